// SPDX-License-Identifier: MIT

package axiom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/jrmesh/approval"
	"github.com/katalvlaran/jrmesh/oracle"
)

// Sentinel errors for axiom checks.
var (
	// ErrEmptyCommittee indicates a committee of size 0 (n/k is undefined).
	ErrEmptyCommittee = errors.New("axiom: committee must not be empty")
	// ErrDuplicateMember indicates the same candidate listed twice in a committee.
	ErrDuplicateMember = errors.New("axiom: committee lists a candidate twice")
	// ErrUnknownKind indicates an unsupported axiom selector.
	ErrUnknownKind = errors.New("axiom: unknown axiom kind")
)

// Kind selects a proportionality axiom.
type Kind int

const (
	// JR is Justified Representation.
	JR Kind = iota
	// PJR is Proportional Justified Representation.
	PJR
	// EJR is Extended Justified Representation.
	EJR
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case JR:
		return "JR"
	case PJR:
		return "PJR"
	case EJR:
		return "EJR"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps "jr", "pjr", "ejr" (any case) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "jr":
		return JR, nil
	case "pjr":
		return PJR, nil
	case "ejr":
		return EJR, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Result is the (JR, EJR, PJR) triple produced by Check.
type Result struct {
	JR  bool
	EJR bool
	PJR bool
}

// Violation is a cohesive blocking group read back from the oracle.
type Violation struct {
	Kind Kind
	// Ell is the cohesiveness level at which the witness was found.
	Ell int
	// Voters is the group of ⌈Ell·n/k⌉ voters.
	Voters []approval.VoterID
	// Candidates are the Ell candidates every voter of the group approves.
	Candidates approval.Committee
}

// Option configures a Checker.
type Option func(*Checker)

// WithFactory selects the oracle backend. nil keeps the default.
func WithFactory(f oracle.Factory) Option {
	return func(c *Checker) {
		if f != nil {
			c.factory = f
		}
	}
}

// Checker runs the oracle-backed PJR/EJR tests. A Checker holds no mutable
// state and may be shared; every query builds a fresh model.
type Checker struct {
	factory oracle.Factory
}

// NewChecker returns a Checker using the gophersat backend unless overridden.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{factory: oracle.NewPB}
	for _, opt := range opts {
		opt(c)
	}

	return c
}
