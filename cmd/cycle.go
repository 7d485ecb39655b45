package cmd

import (
	"context"
	"fmt"
	"strconv"

	"warehouse-manager/core/config"
	"warehouse-manager/core/database"
	"warehouse-manager/core/logger"
	"warehouse-manager/core/storage"
	"warehouse-manager/feature/audit"
	"warehouse-manager/feature/catalog"
	"warehouse-manager/feature/cyclecount"
	"warehouse-manager/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cycleUser uint

// cycleCmd is the parent command for all cycle count operations.
var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Run cycle count operations against the warehouse",
	Long: `Run cycle count operations directly from the command line.

Examples:
  # Open a cycle for the current quarter
  cycle start --user 1

  # Finalize cycle 3, writing adjustments back to inventory
  cycle finalize 3 --user 1

  # Archive the reconciliation report of cycle 3
  cycle export 3`,
}

// cycleStartCmd opens a new cycle for the current quarter.
var cycleStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Open a cycle count for the current quarter",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, l, err := newCycleService()
		if err != nil {
			return err
		}

		cycleID, err := svc.StartCycle(context.Background(), cycleUser)
		if err != nil {
			return fmt.Errorf("failed to start cycle: %w", err)
		}

		l.Info("Cycle count opened", zap.Uint("cycle_id", cycleID))
		fmt.Printf("Opened cycle count %d\n", cycleID)
		return nil
	},
}

// cycleFinalizeCmd reconciles a counted cycle back into inventory.
var cycleFinalizeCmd = &cobra.Command{
	Use:   "finalize <cycle-id>",
	Short: "Finalize a cycle count and write adjustments to inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cycleID, err := parseCycleID(args[0])
		if err != nil {
			return err
		}

		svc, l, err := newCycleService()
		if err != nil {
			return err
		}

		if err := svc.FinalizeCycle(context.Background(), cycleID, cycleUser); err != nil {
			return fmt.Errorf("failed to finalize cycle %d: %w", cycleID, err)
		}

		l.Info("Cycle count finalized", zap.Uint("cycle_id", cycleID))
		fmt.Printf("Finalized cycle count %d\n", cycleID)
		return nil
	},
}

// cycleExportCmd archives the reconciliation report of a completed cycle.
var cycleExportCmd = &cobra.Command{
	Use:   "export <cycle-id>",
	Short: "Archive the reconciliation report of a completed cycle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cycleID, err := parseCycleID(args[0])
		if err != nil {
			return err
		}

		svc, l, err := newCycleService()
		if err != nil {
			return err
		}

		object, err := svc.ExportReport(context.Background(), cycleID)
		if err != nil {
			return fmt.Errorf("failed to export cycle %d: %w", cycleID, err)
		}

		l.Info("Cycle report archived", zap.Uint("cycle_id", cycleID), zap.String("object", object))
		fmt.Printf("Report archived to %s\n", object)
		return nil
	},
}

func init() {
	cycleCmd.AddCommand(cycleStartCmd, cycleFinalizeCmd, cycleExportCmd)

	cycleCmd.PersistentFlags().UintVar(&cycleUser, "user", 0, "User ID attributed in the audit trail")

	RootCmd.AddCommand(cycleCmd)
}

func parseCycleID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid cycle id %q: %w", arg, err)
	}
	return uint(id), nil
}

// newCycleService wires a cycle count service from the local configuration.
func newCycleService() (*cyclecount.Service, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection required: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := cyclecount.NewService(db, client, cfg.Storage.Bucket, l,
		catalog.NewStore(), inventory.NewStore(), audit.NewSink())
	return svc, l, nil
}
