package mesh_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/jrmesh/mesh"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name                string
		m, n, k, covP, appP int
		err                 error
	}{
		{"NoVoters", 3, 0, 1, 1, 1, mesh.ErrBadShape},
		{"ZeroK", 3, 4, 0, 1, 1, mesh.ErrBadShape},
		{"KAboveM", 2, 4, 3, 1, 1, mesh.ErrBadShape},
		{"ZeroParts", 3, 4, 1, 0, 1, mesh.ErrBadShape},
		{"TooManyCoverageParts", 3, 4, 1, 5, 1, mesh.ErrTooManyParts},
		{"TooManyApprovalParts", 3, 2, 1, 1, 3, mesh.ErrTooManyParts},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mesh.New(tc.m, tc.n, tc.k, tc.covP, tc.appP)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

// TestNew_PartitionExact checks that every (coverage, approval) point of the
// plane lies in exactly one cell, including uneven splits.
func TestNew_PartitionExact(t *testing.T) {
	shapes := [][5]int{
		{5, 10, 3, 3, 7},
		{4, 7, 2, 7, 14},
		{6, 9, 4, 1, 5},
		{3, 1, 1, 1, 1},
	}
	for _, s := range shapes {
		m, err := mesh.New(s[0], s[1], s[2], s[3], s[4])
		require.NoError(t, err)
		cells := m.All()
		require.Len(t, cells, s[3]*s[4])
		for cov := 1; cov <= s[1]; cov++ {
			for app := 1; app <= s[1]*s[2]; app++ {
				hits := 0
				for _, c := range cells {
					if c.Contains(cov, app) {
						hits++
					}
				}
				require.Equalf(t, 1, hits, "shape %v point (%d,%d)", s, cov, app)
			}
		}
	}
}

func TestAll_Order(t *testing.T) {
	m, err := mesh.New(3, 4, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []mesh.Cell{
		{CovLo: 3, CovHi: 4, AppLo: 1, AppHi: 2},
		{CovLo: 3, CovHi: 4, AppLo: 3, AppHi: 4},
		{CovLo: 1, CovHi: 2, AppLo: 1, AppHi: 2},
		{CovLo: 1, CovHi: 2, AppLo: 3, AppHi: 4},
	}, m.All())
}

//----------------------------------------------------------------------------//
// Values and lookup
//----------------------------------------------------------------------------//

func TestCellAt_AndValues(t *testing.T) {
	m, err := mesh.New(5, 10, 3, 3, 7, mesh.WithInitialValue('-'))
	require.NoError(t, err)

	// last coverage span is [7,10]; last approval span is [25,30]
	c, err := m.CellAt(10, 30)
	require.NoError(t, err)
	assert.Equal(t, mesh.Cell{CovLo: 7, CovHi: 10, AppLo: 25, AppHi: 30}, c)

	row, col, err := m.Coordinate(c)
	require.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, 7, col)

	v, err := m.Value(c)
	require.NoError(t, err)
	assert.Equal(t, '-', v)
	require.NoError(t, m.SetValueAt(8, 26, 'x'))
	v, _ = m.Value(c)
	assert.Equal(t, 'x', v)

	_, err = m.CellAt(0, 5)
	require.ErrorIs(t, err, mesh.ErrOutOfRange)
	_, err = m.CellAt(5, 31)
	require.ErrorIs(t, err, mesh.ErrOutOfRange)
	require.ErrorIs(t, m.SetValue(mesh.Cell{CovLo: 1}, 'x'), mesh.ErrUnknownCell)
	_, _, err = m.Coordinate(mesh.Cell{})
	require.ErrorIs(t, err, mesh.ErrUnknownCell)
}

//----------------------------------------------------------------------------//
// Clipping
//----------------------------------------------------------------------------//

// TestClipByValues_Boundaries covers the wide, empty and inverted regions.
func TestClipByValues_Boundaries(t *testing.T) {
	m, err := mesh.New(4, 8, 2, 4, 4)
	require.NoError(t, err)

	m.ClipByValues(0, 100, 0, 100)
	assert.Empty(t, m.Clipped())
	assert.Len(t, m.Unclipped(), 16)

	m.ClipByValues(5, 4, 0, 100)
	assert.Empty(t, m.Unclipped())
	assert.Len(t, m.Clipped(), 16)
}

func TestClipByValues_IdempotentAndMonotone(t *testing.T) {
	m, err := mesh.New(4, 8, 2, 4, 4)
	require.NoError(t, err)

	m.ClipByValues(3, 6, 5, 12)
	first := m.Unclipped()
	// coverage spans [1,2][3,4][5,6][7,8]; approval [1,4][5,8][9,12][13,16]
	assert.Len(t, first, 4)
	m.ClipByValues(3, 6, 5, 12)
	assert.Equal(t, first, m.Unclipped())

	// a wider region never re-activates
	m.ClipByValues(1, 8, 1, 16)
	assert.Equal(t, first, m.Unclipped())

	require.NoError(t, m.Unclip(mesh.Cell{CovLo: 1, CovHi: 2, AppLo: 1, AppHi: 4}))
	assert.Len(t, m.Unclipped(), 5)
	assert.False(t, m.IsClipped(mesh.Cell{CovLo: 1, CovHi: 2, AppLo: 1, AppHi: 4}))
}

func TestClipByCoordinates(t *testing.T) {
	m, err := mesh.New(4, 8, 2, 4, 4)
	require.NoError(t, err)

	// drop the lowest row, the highest row and the rightmost column
	m.ClipByCoordinates(1, 1, 0, 1)
	cells := m.Unclipped()
	require.Len(t, cells, 6)
	for _, c := range cells {
		row, col, err := m.Coordinate(c)
		require.NoError(t, err)
		assert.True(t, row >= 2 && row <= 3, "row %d", row)
		assert.True(t, col <= 3, "col %d", col)
	}
}

func TestClip_SingleCell(t *testing.T) {
	m, err := mesh.New(2, 2, 1, 1, 2)
	require.NoError(t, err)
	c := m.All()[0]
	require.NoError(t, m.Clip(c))
	assert.Equal(t, []mesh.Cell{c}, m.Clipped())
	require.ErrorIs(t, m.Clip(mesh.Cell{}), mesh.ErrUnknownCell)
}

//----------------------------------------------------------------------------//
// Depiction
//----------------------------------------------------------------------------//

func TestDepict_Layout(t *testing.T) {
	m, err := mesh.New(3, 4, 2, 2, 4)
	require.NoError(t, err)
	require.NoError(t, m.SetValueAt(4, 1, 'a'))
	require.NoError(t, m.SetValueAt(1, 8, 'z'))

	var buf bytes.Buffer
	require.NoError(t, m.Depict(&buf))
	assert.Equal(t, "a...\n...z\n", buf.String())
	assert.Equal(t, buf.String(), m.String())
	assert.Equal(t, [][]rune{[]rune("a..."), []rune("...z")}, m.Rows())
}

func TestRegions(t *testing.T) {
	m, err := mesh.New(5, 4, 2, 2, 4)
	require.NoError(t, err)
	require.NoError(t, m.SetValueAt(4, 1, 'j'))
	require.NoError(t, m.SetValueAt(4, 3, 'j'))
	require.NoError(t, m.SetValueAt(1, 5, 'j'))
	require.Equal(t, "jj..\n..j.\n", m.String())

	four := m.Regions('j', mesh.Conn4)
	require.Len(t, four, 2)
	assert.Equal(t, []mesh.Cell{
		{CovLo: 3, CovHi: 4, AppLo: 1, AppHi: 2},
		{CovLo: 3, CovHi: 4, AppLo: 3, AppHi: 4},
	}, four[0])
	assert.Equal(t, []mesh.Cell{{CovLo: 1, CovHi: 2, AppLo: 5, AppHi: 6}}, four[1])

	eight := m.Regions('j', mesh.Conn8)
	require.Len(t, eight, 1)
	assert.Len(t, eight[0], 3)

	assert.Empty(t, m.Regions('x', mesh.Conn4))
	assert.Len(t, m.Regions(mesh.DefaultValue, mesh.Conn4), 2)
	assert.Len(t, m.Regions(mesh.DefaultValue, mesh.Conn8), 1)
}
