// SPDX-License-Identifier: MIT

package rules

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/mesh"
	"github.com/katalvlaran/jrmesh/search"
	"github.com/katalvlaran/jrmesh/store"
)

// Env is everything a Strategy needs besides the mesh. It is read-only during
// Compute.
type Env struct {
	Matrix        *approval.Matrix
	CommitteeSize int
	Stats         search.Stats
	Engine        *search.Engine
	Logger        *zap.Logger
	// Store caches cell outcomes when non-nil.
	Store *store.Store
	// Digest keys Store entries; see store.Digest.
	Digest uint64
	// Workers bounds concurrent cell queries; values below 1 mean 1.
	Workers int
	// PhragmenTimeLimit bounds the tied-committee enumeration; 0 disables it.
	PhragmenTimeLimit time.Duration
}

// EnvOption configures NewEnv.
type EnvOption func(*Env)

// WithStore enables the cell cache.
func WithStore(s *store.Store) EnvOption {
	return func(env *Env) { env.Store = s }
}

// WithLogger sets the logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) EnvOption {
	return func(env *Env) {
		if l != nil {
			env.Logger = l
		}
	}
}

// WithWorkers sets the cell query concurrency.
func WithWorkers(n int) EnvOption {
	return func(env *Env) { env.Workers = n }
}

// WithPhragmenTimeLimit bounds SequentialPhragmen.
func WithPhragmenTimeLimit(d time.Duration) EnvOption {
	return func(env *Env) { env.PhragmenTimeLimit = d }
}

// NewEnv computes the profile statistics for committees of size k and returns
// an environment ready for any Strategy.
func NewEnv(ctx context.Context, engine *search.Engine, mx *approval.Matrix, k int, opts ...EnvOption) (*Env, error) {
	if engine == nil {
		engine = search.New()
	}
	env := &Env{
		Matrix:        mx,
		CommitteeSize: k,
		Engine:        engine,
		Logger:        zap.NewNop(),
		Workers:       1,
	}
	for _, opt := range opts {
		opt(env)
	}

	st, err := engine.ComputeStats(ctx, mx, k)
	if err != nil {
		return nil, err
	}
	env.Stats = st
	env.Digest = store.Digest(mx, k)

	return env, nil
}

// NewMesh builds a mesh sized for this environment.
func (env *Env) NewMesh(coverageParts, approvalParts int, opts ...mesh.Option) (*mesh.Mesh, error) {
	return mesh.New(env.Matrix.Cols(), env.Matrix.Rows(), env.CommitteeSize, coverageParts, approvalParts, opts...)
}

// request returns the base request restricted to cell.
func (env *Env) request(cell mesh.Cell) search.Request {
	return search.NewRequest(env.Matrix, env.CommitteeSize).Within(
		search.Bounds{Lo: cell.CovLo, Hi: cell.CovHi},
		search.Bounds{Lo: cell.AppLo, Hi: cell.AppHi},
	)
}

func (env *Env) check(m *mesh.Mesh) error {
	if m.VotersNr != env.Matrix.Rows() || m.CommitteeSize != env.CommitteeSize {
		return fmt.Errorf("%w: mesh n=%d k=%d, profile n=%d k=%d", ErrMeshMismatch,
			m.VotersNr, m.CommitteeSize, env.Matrix.Rows(), env.CommitteeSize)
	}

	return nil
}

func (env *Env) logger() *zap.Logger {
	if env.Logger == nil {
		return zap.NewNop()
	}

	return env.Logger
}

// clipToJR restricts m to the JR statistics; without JR committees every
// cell is clipped.
func (env *Env) clipToJR(m *mesh.Mesh) {
	st := env.Stats
	if !st.HasJR {
		m.ClipByValues(1, 0, 1, 0)

		return
	}
	m.ClipByValues(st.MinJRCov, st.MaxJRCov, st.MinJRApp, st.MaxJRApp)
}
