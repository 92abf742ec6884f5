package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/phragmen"
)

// phragmenCmd lists the tied Sequential Phragmén committees.
var phragmenCmd = &cobra.Command{
	Use:   "phragmen",
	Short: "List every committee Sequential Phragmén can elect under ties",
	Long: `Runs Sequential Phragmén with exact loads and prints each tied committee
with its final maximal voter load, coverage and approval score.

Example:
  jrmesh phragmen -p election.toc -k 2`,
	Args: cobra.NoArgs,
	RunE: runPhragmen,
}

func runPhragmen(cmd *cobra.Command, args []string) error {
	_, mx, err := loadMatrix()
	if err != nil {
		return err
	}
	results, err := phragmen.Enumerate(mx, cfg.Run.CommitteeSize, phragmen.WithTimeLimit(timeout))
	if err != nil {
		return err
	}
	logger.Info("phragmen done", zap.Int("committees", len(results)))

	out := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(out, "%v max load %s coverage %d approval %d\n",
			r.Committee, r.MaxLoad.RatString(), r.Coverage, r.Approval)
	}

	return nil
}
