// SPDX-License-Identifier: MIT

package rules

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/phragmen"
)

// SequentialPhragmen marks every active cell containing the (coverage,
// approval score) of some tied Sequential Phragmén committee.
type SequentialPhragmen struct{}

// Name implements Strategy.
func (SequentialPhragmen) Name() string { return "phragmen" }

// Compute implements Strategy.
func (s SequentialPhragmen) Compute(ctx context.Context, env *Env, m *mesh.Mesh, symbol rune) error {
	if err := env.check(m); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	committees, err := phragmen.Enumerate(env.Matrix, env.CommitteeSize,
		phragmen.WithTimeLimit(env.PhragmenTimeLimit),
		phragmen.WithContext(ctx))
	if err != nil {
		return err
	}
	env.logger().Debug("phragmen committees", zap.Int("count", len(committees)))

	for _, cell := range m.Unclipped() {
		for _, r := range committees {
			if cell.Contains(r.Coverage, r.Approval) {
				if err = m.SetValue(cell, symbol); err != nil {
					return err
				}

				break
			}
		}
	}

	return nil
}
