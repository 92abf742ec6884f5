package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/rules"
	"github.com/katalvlaran/jrmesh/search"
	"github.com/katalvlaran/jrmesh/store"
)

var (
	ruleNames     []string
	coverageParts int
	approvalParts int
	workers       int
	color         bool
)

// analyzeCmd paints one mesh per rule.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Map the cells holding committees for each rule",
	Long: `Computes the coverage/approval extremes of all size-k committees and of
the JR committees, then paints one mesh per rule.

Rules: ` + strings.Join(rules.Names(), ", ") + `

Example:
  jrmesh analyze -p election.toc -k 3 --rules jr,pjr,ejr,phragmen`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&ruleNames, "rules", nil, "Rules to run (overrides run.rules)")
	analyzeCmd.Flags().IntVar(&coverageParts, "coverage-parts", 0, "Mesh rows (overrides mesh.coverage_parts)")
	analyzeCmd.Flags().IntVar(&approvalParts, "approval-parts", 0, "Mesh columns (overrides mesh.approval_parts)")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent cell queries (overrides run.workers)")
	analyzeCmd.Flags().BoolVar(&color, "color", false, "Style the meshes for a terminal")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	if cmd.Flags().Changed("rules") {
		cfg.Run.Rules = ruleNames
	}
	if coverageParts > 0 {
		cfg.Mesh.CoverageParts = coverageParts
	}
	if approvalParts > 0 {
		cfg.Mesh.ApprovalParts = approvalParts
	}
	if workers > 0 {
		cfg.Run.Workers = workers
	}
	strategies := make([]rules.Strategy, 0, len(cfg.Run.Rules))
	for _, name := range cfg.Run.Rules {
		s, err := rules.Lookup(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	_, mx, err := loadMatrix()
	if err != nil {
		return err
	}
	engine := search.New(
		search.WithLogger(logger),
		search.WithTimeout(cfg.SolverTimeout()),
		search.WithMaxRefinements(cfg.Solver.MaxRefinements),
	)
	opts := []rules.EnvOption{
		rules.WithLogger(logger),
		rules.WithWorkers(cfg.Run.Workers),
	}
	if cfg.Store.Enabled {
		path := cfg.Store.Path
		if cfg.Store.InMemory {
			path = ""
		}
		st, err := store.Open(path, store.WithLogger(logger))
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		opts = append(opts, rules.WithStore(st))
	}

	start := time.Now()
	env, err := rules.NewEnv(ctx, engine, mx, cfg.Run.CommitteeSize, opts...)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStats(env.Stats, color))

	initial := cfg.InitialRune()
	for _, s := range strategies {
		m, err := env.NewMesh(cfg.Mesh.CoverageParts, cfg.Mesh.ApprovalParts, mesh.WithInitialValue(initial))
		if err != nil {
			return err
		}
		symbol := cfg.Symbol(s.Name())
		ruleStart := time.Now()
		if err = s.Compute(ctx, env, m, symbol); err != nil {
			return err
		}
		logger.Info("rule done",
			zap.String("rule", s.Name()),
			zap.Int("active", len(m.Unclipped())),
			zap.Int("regions", len(m.Regions(symbol, mesh.Conn8))),
			zap.Duration("took", time.Since(ruleStart)))
		fmt.Fprintln(out, renderMesh(s.Name(), m, initial, color))
	}
	logger.Info("analysis done", zap.Duration("took", time.Since(start)))

	return nil
}
