package processing

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

func propagated(t *testing.T, parts []*entities.Part, settings entities.Settings) (*Processor, error) {
	t.Helper()
	p := newValidatedProcessor(t, parts, settings)
	require.NoError(t, p.resolveHierarchy())
	return p, p.propagateQuantities()
}

func TestPropagateQuantities(t *testing.T) {
	settings := layoutSettings()
	settings.MainAssemblySets = 2

	// a child listed before its parent still resolves
	p, err := propagated(t, partsFrom(
		[3]string{"1-1", "1", "CHILD"},
		[3]string{"1", "1", "ASM"},
	), settings)
	require.NoError(t, err)

	child := byPosition(p.working)["1-1"]
	assert.EqualValues(t, 2, *child.Sets)
	assert.EqualValues(t, 2, *child.ToOrder)
}

func TestPropagateQuantities_MultipliesAncestors(t *testing.T) {
	settings := layoutSettings()
	settings.MainAssemblySets = 3
	rows := [][3]string{
		{"1", "2", "A"},
		{"1-1", "4", "B"},
		{"1-1-1", "5", "C"},
		{"1-1-1-1", "0", "D"},
		{"2", "7", "E"},
	}

	p, err := propagated(t, partsFrom(rows...), settings)
	require.NoError(t, err)

	want := map[string][2]entities.Quantity{
		"1":       {3, 6},
		"1-1":     {6, 24},
		"1-1-1":   {24, 120},
		"1-1-1-1": {120, 0},
		"2":       {3, 21},
	}
	parts := byPosition(p.working)
	for position, w := range want {
		assert.Equal(t, w[0], *parts[position].Sets, "sets of %s", position)
		assert.Equal(t, w[1], *parts[position].ToOrder, "to order of %s", position)
	}

	// sets == main sets * product of ancestor quantities, to_order == qty * sets
	for _, part := range p.working {
		ancestorProduct := entities.Quantity(1)
		for _, ancestor := range part.Hierarchy.Ancestors {
			q, _ := strconv.ParseInt(parts[ancestor].Attributes[colQuantity], 10, 64)
			ancestorProduct *= entities.Quantity(q)
		}
		q, _ := strconv.ParseInt(part.Attributes[colQuantity], 10, 64)
		assert.Equal(t, settings.MainAssemblySets*ancestorProduct, *part.Sets)
		assert.Equal(t, entities.Quantity(q)*(*part.Sets), *part.ToOrder)
	}
}

func TestPropagateQuantities_Overflow(t *testing.T) {
	huge := strconv.FormatInt(math.MaxInt64/2, 10)
	_, err := propagated(t, partsFrom(
		[3]string{"1", huge, "A"},
		[3]string{"1-1", "3", "B"},
	), layoutSettings())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuantityOverflow))
}

func TestMultiply(t *testing.T) {
	got, err := multiply(6, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 42, got)

	got, err = multiply(0, math.MaxInt64)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got)

	_, err = multiply(math.MaxInt64, 2)
	assert.ErrorIs(t, err, ErrQuantityOverflow)
}
