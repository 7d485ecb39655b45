// Package server holds the HTTP server configuration.
//
// The main application entry point handles the actual server startup; this
// package only defines the configuration structure embedded by core/config,
// such as the listen port and the API key protecting the back-office API.
package server
