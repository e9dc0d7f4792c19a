package processing

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

func sequenced(t *testing.T, parts []*entities.Part, settings entities.Settings) (*Processor, error) {
	t.Helper()
	p := newValidatedProcessor(t, parts, settings)
	require.NoError(t, p.resolveHierarchy())
	require.NoError(t, p.classify())
	require.NoError(t, p.propagateQuantities())
	return p, p.sequence()
}

func TestSequence_TypePriorityThenNumber(t *testing.T) {
	settings := layoutSettings()
	settings.JunkPartKeywords = []string{"FOIL"}
	parts := partsFrom(
		[3]string{"2", "1", "M-2022-02-00"},
		[3]string{"1", "1", "M-2022-01-00"},
		[3]string{"1-1", "2", "ZETA VALVE"},
		[3]string{"1-2", "4", "DIN 912 M6"},
		[3]string{"1-3", "1", "M-2022-01-02"},
		[3]string{"1-4", "1", "FOIL"},
		[3]string{"1-5", "1", "ALPHA VALVE"},
		[3]string{"1-6", "1", "M-2022-01-01"},
		[3]string{"1-3-1", "1", "M-2022-01-02-01"},
		[3]string{"2-1", "1", "ISO 4762 M4"},
	)

	p, err := sequenced(t, parts, settings)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1",
		"1-6", // production M-2022-01-01
		"1-3", // production M-2022-01-02
		"1-3-1",
		"1-5", // purchased ALPHA
		"1-1", // purchased ZETA
		"1-2", // fastener
		"1-4", // junk
		"2",
		"2-1",
	}, positionsOf(p.working))
}

func TestSequence_RemapsIndices(t *testing.T) {
	bom := layoutBOM()
	p, err := sequenced(t, bom.Parts(), bom.Settings)
	require.NoError(t, err)

	for i, part := range p.working {
		h := part.Hierarchy
		if !h.IsTopLevel() {
			parent := p.working[h.ParentIndex]
			assert.Equal(t, h.ParentPosition, parent.Attributes[colPosition])
			assert.Contains(t, parent.Hierarchy.Children, i)
		}
		for _, child := range h.Children {
			assert.Equal(t, i, p.working[child].Hierarchy.ParentIndex)
		}
	}
}

func TestSequence_IsPreOrder(t *testing.T) {
	parts := partsFrom(
		[3]string{"3", "1", "C"},
		[3]string{"1", "1", "M-2022-A"},
		[3]string{"1-2", "1", "M-2022-B"},
		[3]string{"1-2-1", "1", "M-2022-C"},
		[3]string{"1-1", "1", "M-2022-D"},
		[3]string{"1-2-2", "1", "E"},
		[3]string{"2", "1", "B"},
		[3]string{"2-1", "1", "F"},
	)

	p, err := sequenced(t, parts, layoutSettings())
	require.NoError(t, err)
	require.Len(t, p.working, len(parts))

	seen := make(map[string]bool)
	var stack []string
	for _, part := range p.working {
		position := part.Attributes[colPosition]
		assert.False(t, seen[position], "%s placed twice", position)
		seen[position] = true

		// pop until the top of the stack is this part's parent
		parent := part.Hierarchy.ParentPosition
		for len(stack) > 0 && stack[len(stack)-1] != parent {
			stack = stack[:len(stack)-1]
		}
		if parent != "" {
			require.NotEmpty(t, stack, "%s placed outside its parent's subtree", position)
		} else {
			assert.Empty(t, stack)
		}
		stack = append(stack, position)
	}
}

func TestSequence_TooDeep(t *testing.T) {
	segments := make([]string, 0, MaxGenerations+1)
	rows := make([][3]string, 0, MaxGenerations+1)
	for i := 1; i <= MaxGenerations+1; i++ {
		segments = append(segments, "1")
		rows = append(rows, [3]string{strings.Join(segments, "-"), "1", "P" + strconv.Itoa(i)})
	}

	_, err := sequenced(t, partsFrom(rows[:MaxGenerations]...), layoutSettings())
	require.NoError(t, err)

	_, err = sequenced(t, partsFrom(rows...), layoutSettings())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHierarchyTooDeep))
}
