// SPDX-License-Identifier: MIT

package rules

import (
	"fmt"
	"sort"
)

var registry = map[string]Strategy{}

func register(s Strategy) { registry[s.Name()] = s }

func init() {
	register(JRCommittee{})
	register(PJRCommittee{})
	register(EJRCommittee{})
	register(AnyCommittee{})
	register(MaxApprovalCommittee{})
	register(ChamberlinCourant{})
	register(SinglePAV{})
	register(PAV{})
	register(SequentialPhragmen{})
}

// Lookup returns the Strategy registered under name.
func Lookup(name string) (Strategy, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}

	return s, nil
}

// Names lists the registered rules in ascending order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
