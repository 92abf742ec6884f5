// SPDX-License-Identifier: MIT

package preflib

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ballotLine is "count (, | :) group (, group)*".
type ballotLine struct {
	Count  int      `@Int ( "," | ":" )`
	Groups []*group `( @@ ( "," @@ )* )?`
}

// group is either a braced set "{a,b}" (possibly empty) or a single id.
type group struct {
	Set    *set `  @@`
	Single *int `| @Int`
}

type set struct {
	Members []int `"{" ( @Int ( "," @Int )* )? "}"`
}

// headerLine is a comma-separated list of integers.
type headerLine struct {
	Values []int `@Int ( "," @Int )*`
}

var sBallotLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[,:{}]`},
	{Name: "whitespace", Pattern: `[ \t\r]+`},
})

var (
	sParseBallot = participle.MustBuild[ballotLine](participle.Lexer(sBallotLexer))
	sParseHeader = participle.MustBuild[headerLine](participle.Lexer(sBallotLexer))
)

// members flattens a group to its ids.
func (g *group) members() []int {
	if g.Set != nil {
		return g.Set.Members
	}
	if g.Single != nil {
		return []int{*g.Single}
	}

	return nil
}
