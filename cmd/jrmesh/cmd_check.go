package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/axiom"
)

var (
	committeeFlag string
	witness       bool
)

// checkCmd tests one committee against JR, EJR and PJR.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a committee for JR, EJR and PJR",
	Long: `Prints the (JR, EJR, PJR) triple of the committee given with --committee.
Candidates are 0-based.

Example:
  jrmesh check -p election.toc --committee 0,2 --witness`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&committeeFlag, "committee", "", "Comma-separated 0-based candidate ids")
	checkCmd.Flags().BoolVar(&witness, "witness", false, "Print a blocking group for every failed axiom")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	w, err := parseCommittee(committeeFlag)
	if err != nil {
		return err
	}
	_, mx, err := loadMatrix()
	if err != nil {
		return err
	}

	chk := axiom.NewChecker()
	res, err := chk.Check(ctx, mx, w)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "committee %v: JR=%t EJR=%t PJR=%t\n", w, res.JR, res.EJR, res.PJR)
	if !witness {
		return nil
	}

	failed := map[axiom.Kind]bool{axiom.JR: !res.JR, axiom.PJR: !res.PJR, axiom.EJR: !res.EJR}
	for _, kind := range []axiom.Kind{axiom.JR, axiom.PJR, axiom.EJR} {
		if !failed[kind] {
			continue
		}
		v, err := chk.Witness(ctx, mx, w, kind)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		fmt.Fprintf(out, "%s violated at ell=%d: voters %v jointly approve %v\n",
			kind, v.Ell, v.Voters, v.Candidates)
	}

	return nil
}

// parseCommittee reads "0,2,5".
func parseCommittee(s string) (approval.Committee, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("--committee is required")
	}
	parts := strings.Split(s, ",")
	w := make(approval.Committee, 0, len(parts))
	for _, p := range parts {
		c, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("committee member %q: %w", p, err)
		}
		w = append(w, approval.Candidate(c))
	}

	return w, nil
}
