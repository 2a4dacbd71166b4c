package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/hupe1980/meshgo/geometry"
	"github.com/hupe1980/meshgo/halfedge"
)

func TestPositionsOwnership(t *testing.T) {
	src := []r3.Vec{{X: 1}, {Y: 2}}
	p := geometry.NewPositions(src)

	// The input slice stays owned by the caller.
	src[0] = r3.Vec{X: 99}
	got, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1}, got)
}

func TestPositionsSetAndAppend(t *testing.T) {
	p := geometry.NewPositions([]r3.Vec{{X: 1}})

	require.NoError(t, p.Set(0, r3.Vec{X: 5}))
	got, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 5}, got)

	idx := p.Append(r3.Vec{Y: 7})
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, p.Len())
}

func TestPositionsEnsure(t *testing.T) {
	p := geometry.NewPositions(nil)
	p.Ensure(3)
	assert.Equal(t, 4, p.Len())
	got, err := p.At(3)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{}, got)
}

func TestPositionsOutOfRange(t *testing.T) {
	p := geometry.NewPositions([]r3.Vec{{}})
	var oor *halfedge.ErrIndexOutOfRange

	_, err := p.At(1)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 1, oor.ID)

	err = p.Set(-1, r3.Vec{})
	assert.ErrorAs(t, err, &oor)
}

func TestPositionsClone(t *testing.T) {
	p := geometry.NewPositions([]r3.Vec{{X: 1}})
	c := p.Clone()

	require.NoError(t, c.Set(0, r3.Vec{X: 2}))
	got, err := p.At(0)
	require.NoError(t, err)
	assert.Equal(t, r3.Vec{X: 1}, got)
}
