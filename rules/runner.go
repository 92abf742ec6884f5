// SPDX-License-Identifier: MIT

package rules

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/search"
	"github.com/katalvlaran/jrmesh/store"
)

// cellQuery answers one cell.
type cellQuery func(ctx context.Context, req search.Request) (search.Outcome, error)

// paint asks q for every unclipped cell and writes symbol into the cells
// where a committee was found.
// Stage 1: fan the queries out, at most env.Workers at a time.
// Stage 2: once all answered, write the symbols in All order.
// The first error cancels the remaining queries and leaves m unpainted.
func (env *Env) paint(ctx context.Context, m *mesh.Mesh, cacheKey string, symbol rune, q cellQuery) error {
	var (
		cells = m.Unclipped()
		found = make([]bool, len(cells))
		log   = env.logger().With(zap.String("rule", cacheKey))
	)
	workers := env.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for t, cell := range cells {
		t, cell := t, cell
		g.Go(func() error {
			out, err := env.answer(gctx, cacheKey, cell, q)
			if err != nil {
				return errors.Wrapf(err, "%s %s", cacheKey, cell)
			}
			found[t] = out.Found
			log.Debug("cell",
				zap.Stringer("cell", cell),
				zap.Bool("found", out.Found),
				zap.Stringer("committee", out.Committee))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for t, cell := range cells {
		if !found[t] {
			continue
		}
		if err := m.SetValue(cell, symbol); err != nil {
			return err
		}
	}

	return nil
}

// answer consults the cache before running q.
func (env *Env) answer(ctx context.Context, cacheKey string, cell mesh.Cell, q cellQuery) (search.Outcome, error) {
	if env.Store == nil {
		return q(ctx, env.request(cell))
	}

	key := store.Key{
		Digest: env.Digest,
		Rule:   cacheKey,
		Cell:   [4]int{cell.CovLo, cell.CovHi, cell.AppLo, cell.AppHi},
	}
	out, ok, err := env.Store.Get(key)
	if err != nil {
		return search.Outcome{}, err
	}
	if ok {
		return out, nil
	}
	if out, err = q(ctx, env.request(cell)); err != nil {
		return search.Outcome{}, err
	}

	return out, env.Store.Put(key, out)
}
