// Command jrmesh maps where proportional committees live in the
// (coverage, approval score) plane of an approval election.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/config"
	"github.com/katalvlaran/jrmesh/internal/logging"
	"github.com/katalvlaran/jrmesh/preflib"
)

var (
	// Global flags
	verbose        bool
	configPath     string
	profilePath    string
	committeeSize  int
	groupsApproved int
	timeout        time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jrmesh",
	Short: "Explore JR, PJR and EJR committees of approval elections",
	Long: `jrmesh reads an approval profile (PrefLib partial-order format) and
reports which committees satisfy Justified Representation and its
proportional extensions.

The analyze command partitions the (coverage, approval score) plane into a
mesh and marks, per rule, the cells where a qualifying committee exists.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if cmd.Flags().Changed("k") {
			cfg.Run.CommitteeSize = committeeSize
		}
		if cmd.Flags().Changed("groups") {
			cfg.Run.GroupsApproved = groupsApproved
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		if err = cfg.Validate(); err != nil {
			return err
		}

		if logger, err = logging.New(cfg.Logging); err != nil {
			return err
		}
		logger = logger.With(zap.String("run", uuid.NewString()))

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "jrmesh.yaml", "Configuration file (defaults apply when missing)")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "PrefLib approval profile (.toc/.soc)")
	rootCmd.PersistentFlags().IntVarP(&committeeSize, "k", "k", 0, "Committee size (overrides run.committee_size)")
	rootCmd.PersistentFlags().IntVar(&groupsApproved, "groups", 0, "Leading indifference groups counted as approved (overrides run.groups_approved)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Overall time limit (0 = none)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(phragmenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// commandContext returns a context cancelled on SIGINT/SIGTERM and after the
// --timeout budget.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	return ctx, func() {
		cancel()
		stop()
	}
}

// loadMatrix reads --profile into an approval matrix.
func loadMatrix() (*preflib.Election, *approval.Matrix, error) {
	if profilePath == "" {
		return nil, nil, fmt.Errorf("--profile is required")
	}
	e, err := preflib.LoadFile(profilePath, cfg.Run.GroupsApproved)
	if err != nil {
		return nil, nil, err
	}
	mx, err := approval.NewMatrix(e.Profile)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("profile loaded",
		zap.String("path", profilePath),
		zap.Int("voters", mx.Rows()),
		zap.Int("candidates", mx.Cols()),
		zap.Int("ballotLines", e.Lines))

	return e, mx, nil
}
