package cmd

import (
	"context"
	"fmt"
	"os"

	"warehouse-manager/core/config"
	"warehouse-manager/core/database"
	"warehouse-manager/core/logger"
	"warehouse-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the warehouse database",
	Long:  `Checks the warehouse schema against the declared models and scans cycle count data for inconsistencies.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the warehouse database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false)
	},
}

// cyclesCmd represents the integrity cycles command
var cyclesCmd = &cobra.Command{
	Use:   "cycles",
	Short: "Check cycle count data consistency",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, cyclesCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runCycles bool) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Database connection required", zap.Error(err))
	}

	svc := integrity.NewService(db, logg)

	if runSchema {
		logg.Info("Checking warehouse schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Fatal("Schema check failed", zap.Error(err))
		}

		if report.Matched {
			logg.Info("Schema matches expected definition.")
		} else {
			logg.Warn("Schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if !tblReport.Present {
					logg.Warn("Missing Table", zap.String("table", table))
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if runCycles {
		logg.Info("Checking cycle count data...")
		report, err := svc.CheckCycles(ctx)
		if err != nil {
			logg.Fatal("Cycle data check failed", zap.Error(err))
		}

		if report.Consistent() {
			logg.Info("Cycle count data is consistent.")
		} else {
			if len(report.PendingWithoutDetails) > 0 {
				logg.Warn("Pending cycles without details", zap.Uints("cycle_ids", report.PendingWithoutDetails))
			}
			if len(report.OrphanDetails) > 0 {
				logg.Warn("Details referencing missing cycles", zap.Uints("detail_ids", report.OrphanDetails))
			}
			if len(report.DetailsMissingProduct) > 0 {
				logg.Warn("Details referencing missing products", zap.Uints("detail_ids", report.DetailsMissingProduct))
			}
			if len(report.NegativeInventory) > 0 {
				logg.Warn("Negative inventory quantities", zap.Uints("product_ids", report.NegativeInventory))
			}
			if len(report.CompletedUnrecorded) > 0 {
				logg.Warn("Completed cycles with unrecorded counts", zap.Uints("cycle_ids", report.CompletedUnrecorded))
			}
		}
	}
}
