// Package integrity provides warehouse data health checks.
//
// Unlike the 'cyclecount' package which reconciles inventory against counted
// quantities, this package validates the structural and relational
// requirements of the warehouse database.
//
// # Checks Provided
//
//   - Schema: Validates that every table the engine depends on exists with
//     the columns its model declares.
//   - Cycles: Scans for inconsistent cycle count data, including Pending
//     headers without detail rows, details referencing missing cycles or
//     products, negative inventory quantities, and Completed cycles that
//     still carry unrecorded counts.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/cycles : Runs the cycle data check.
package integrity
