// SPDX-License-Identifier: MIT

package search

import (
	"fmt"

	"github.com/katalvlaran/jrmesh/approval"
)

// Goal selects the objective of the base model.
type Goal int

const (
	// CommitteeOfSize asks for any committee of exactly k members.
	CommitteeOfSize Goal = iota
	// CoreMin lifts the size equality and minimises the committee size.
	CoreMin
	// ApprovalMax maximises the approval score.
	ApprovalMax
	// ApprovalMin minimises the approval score.
	ApprovalMin
	// CoverageMax maximises the number of covered voters.
	CoverageMax
	// CoverageMin minimises the number of covered voters.
	CoverageMin
)

// String implements fmt.Stringer.
func (g Goal) String() string {
	switch g {
	case CommitteeOfSize:
		return "committee-of-size"
	case CoreMin:
		return "core-min"
	case ApprovalMax:
		return "approval-max"
	case ApprovalMin:
		return "approval-min"
	case CoverageMax:
		return "coverage-max"
	case CoverageMin:
		return "coverage-min"
	}

	return fmt.Sprintf("Goal(%d)", int(g))
}

func (g Goal) valid() bool {
	return g >= CommitteeOfSize && g <= CoverageMin
}

// Bounds is an inclusive integer range. Lo > Hi is allowed and makes any
// query using it infeasible.
type Bounds struct {
	Lo, Hi int
}

// Contains reports Lo ≤ v ≤ Hi.
func (b Bounds) Contains(v int) bool {
	return b.Lo <= v && v <= b.Hi
}

// Request describes one committee query.
type Request struct {
	// Matrix is the approval profile.
	Matrix *approval.Matrix
	// CommitteeSize is k.
	CommitteeSize int
	// Coverage bounds the number of voters approving at least one member.
	Coverage Bounds
	// Approval bounds Σ over members of their approval counts.
	Approval Bounds
	// RequireApproved demands k ≤ the number of approved candidates.
	RequireApproved bool
}

// NewRequest returns a request for committees of size k with the widest
// bounds the base model admits: coverage in [1, n] and approval in [1, k·n].
func NewRequest(mx *approval.Matrix, k int) Request {
	r := Request{Matrix: mx, CommitteeSize: k}
	if mx != nil {
		r.Coverage = Bounds{Lo: 1, Hi: mx.Rows()}
		r.Approval = Bounds{Lo: 1, Hi: k * mx.Rows()}
	}

	return r
}

// Within returns a copy of r restricted to the given coverage and approval
// bounds.
func (r Request) Within(coverage, approvalScore Bounds) Request {
	r.Coverage = coverage
	r.Approval = approvalScore

	return r
}

// Validate checks the request before any model is built.
func (r Request) Validate() error {
	if r.Matrix == nil {
		return ErrNilMatrix
	}
	k, m := r.CommitteeSize, r.Matrix.Cols()
	if k < 1 || k > m {
		return fmt.Errorf("%w: k=%d with %d candidates", ErrCommitteeSize, k, m)
	}
	if r.RequireApproved && k > r.Matrix.DistinctApproved() {
		return fmt.Errorf("%w: k=%d with %d approved candidates",
			ErrCommitteeSize, k, r.Matrix.DistinctApproved())
	}

	return nil
}
