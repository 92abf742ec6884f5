// SPDX-License-Identifier: MIT

package preflib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/jrmesh/approval"
)

// Election is a loaded PrefLib file.
type Election struct {
	Profile approval.Profile
	// Names maps candidates to the names given in the file, when present.
	Names map[approval.Candidate]string
	// Lines is the number of distinct ballot lines before expansion.
	Lines int
}

// LoadFile opens path and calls Load.
func LoadFile(path string, groupsApproved int) (*Election, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "preflib")
	}
	defer f.Close()

	e, err := Load(f, groupsApproved)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return e, nil
}

// Load parses a PrefLib partial-order file, approving the first
// groupsApproved indifference groups of every ballot.
// Complexity: O(file size + Σ count·|approved|).
func Load(r io.Reader, groupsApproved int) (*Election, error) {
	if groupsApproved < 1 {
		return nil, fmt.Errorf("%w: %d", ErrGroups, groupsApproved)
	}
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrHeader)
	}

	p := &parser{
		election: &Election{
			Profile: approval.Profile{Voters: map[approval.VoterID][]approval.Candidate{}},
			Names:   map[approval.Candidate]string{},
		},
		groups: groupsApproved,
	}
	if strings.HasPrefix(lines[0].text, "#") {
		err = p.current(lines)
	} else {
		err = p.legacy(lines)
	}
	if err != nil {
		return nil, err
	}

	return p.election, nil
}

// line is a non-blank input line with its 1-based number.
type line struct {
	no   int
	text string
}

func readLines(r io.Reader) ([]line, error) {
	var (
		out []line
		sc  = bufio.NewScanner(r)
		no  int
	)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		no++
		if t := strings.TrimSpace(sc.Text()); t != "" {
			out = append(out, line{no: no, text: t})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "preflib: read")
	}

	return out, nil
}

type parser struct {
	election *Election
	groups   int
	m        int
	nextID   approval.VoterID
	total    int
}

// legacy handles the count / names / header / ballots layout.
func (p *parser) legacy(lines []line) error {
	head, err := header(lines[0])
	if err != nil {
		return err
	}
	p.m = head[0]
	if len(head) != 1 || p.m < 1 || len(lines) < p.m+2 {
		return fmt.Errorf("%w: line %d: candidate count", ErrHeader, lines[0].no)
	}
	p.declareCandidates()
	for _, l := range lines[1 : p.m+1] {
		if err = p.name(l); err != nil {
			return err
		}
	}
	counts, err := header(lines[p.m+1])
	if err != nil {
		return err
	}
	for _, l := range lines[p.m+2:] {
		if err = p.ballot(l); err != nil {
			return err
		}
	}
	if counts[0] != p.total {
		return fmt.Errorf("%w: line %d: header declares %d voters, ballots sum to %d",
			ErrHeader, lines[p.m+1].no, counts[0], p.total)
	}

	return nil
}

// current handles "# KEY: value" metadata followed by "count: ..." ballots.
func (p *parser) current(lines []line) error {
	var (
		names = map[int]string{}
		t     int
	)
	for t = 0; t < len(lines) && strings.HasPrefix(lines[t].text, "#"); t++ {
		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(lines[t].text, "#")), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch {
		case key == "NUMBER ALTERNATIVES":
			m, err := strconv.Atoi(value)
			if err != nil || m < 1 {
				return fmt.Errorf("%w: line %d: %q", ErrHeader, lines[t].no, value)
			}
			p.m = m
		case strings.HasPrefix(key, "ALTERNATIVE NAME "):
			id, err := strconv.Atoi(strings.TrimPrefix(key, "ALTERNATIVE NAME "))
			if err == nil {
				names[id] = value
			}
		}
	}
	if p.m == 0 {
		return fmt.Errorf("%w: NUMBER ALTERNATIVES missing", ErrHeader)
	}
	p.declareCandidates()
	for id, name := range names {
		if id < 1 || id > p.m {
			return fmt.Errorf("%w: name for %d", ErrCandidate, id)
		}
		p.election.Names[approval.Candidate(id-1)] = name
	}
	for _, l := range lines[t:] {
		if err := p.ballot(l); err != nil {
			return err
		}
	}

	return nil
}

func (p *parser) declareCandidates() {
	p.election.Profile.Candidates = make([]approval.Candidate, p.m)
	for j := range p.election.Profile.Candidates {
		p.election.Profile.Candidates[j] = approval.Candidate(j)
	}
}

// name reads a legacy "id,name" line.
func (p *parser) name(l line) error {
	idText, name, ok := strings.Cut(l.text, ",")
	id, err := strconv.Atoi(strings.TrimSpace(idText))
	if !ok || err != nil {
		return fmt.Errorf("%w: line %d: candidate line %q", ErrSyntax, l.no, l.text)
	}
	if id < 1 || id > p.m {
		return fmt.Errorf("%w: line %d: %d", ErrCandidate, l.no, id)
	}
	p.election.Names[approval.Candidate(id-1)] = strings.TrimSpace(name)

	return nil
}

// ballot parses one ballot line and appends count voters.
func (p *parser) ballot(l line) error {
	b, err := sParseBallot.ParseString("", l.text)
	if err != nil {
		return fmt.Errorf("%w: line %d: %v", ErrSyntax, l.no, err)
	}
	var approved []approval.Candidate
	for g, grp := range b.Groups {
		for _, id := range grp.members() {
			if id < 1 || id > p.m {
				return fmt.Errorf("%w: line %d: %d", ErrCandidate, l.no, id)
			}
			if g < p.groups {
				approved = append(approved, approval.Candidate(id-1))
			}
		}
	}
	for c := 0; c < b.Count; c++ {
		p.election.Profile.Voters[p.nextID] = append([]approval.Candidate(nil), approved...)
		p.nextID++
	}
	p.total += b.Count
	p.election.Lines++

	return nil
}

// header parses a comma-separated integer line.
func header(l line) ([]int, error) {
	h, err := sParseHeader.ParseString("", l.text)
	if err != nil {
		return nil, fmt.Errorf("%w: line %d: %v", ErrHeader, l.no, err)
	}

	return h.Values, nil
}
