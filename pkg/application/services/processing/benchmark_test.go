package processing

import (
	"fmt"
	"testing"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

func benchmarkRun(b *testing.B, parts []*entities.Part) {
	b.Helper()
	opts := Options{Settings: layoutSettings()}
	director := NewDirector(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := director.Run(parts, opts); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkDirector_Layout(b *testing.B) {
	benchmarkRun(b, layoutBOM().Parts())
}

func BenchmarkDirector_DeepTree(b *testing.B) {
	benchmarkRun(b, setupDeepTree(MaxGenerations))
}

func BenchmarkDirector_WideTree(b *testing.B) {
	benchmarkRun(b, setupWideTree(500))
}

func BenchmarkDirector_LargeTree(b *testing.B) {
	benchmarkRun(b, setupLargeTree(10, 10, 4))
}

// setupDeepTree builds a single chain of production assemblies, one per generation
func setupDeepTree(depth int) []*entities.Part {
	rows := make([][3]string, 0, depth)
	position := "1"
	for level := 0; level < depth; level++ {
		rows = append(rows, [3]string{position, "1", fmt.Sprintf("M-2022-%02d", level)})
		position += "-1"
	}
	return partsFrom(rows...)
}

// setupWideTree builds one assembly with alternating purchased parts and fasteners below it
func setupWideTree(width int) []*entities.Part {
	rows := [][3]string{{"1", "1", "M-2022-01-00"}}
	for i := 1; i <= width; i++ {
		number := fmt.Sprintf("PURCHASED_%04d", i)
		if i%2 == 0 {
			number = fmt.Sprintf("DIN 912 M6 x %d", i)
		}
		rows = append(rows, [3]string{fmt.Sprintf("1-%d", i), "2", number})
	}
	return partsFrom(rows...)
}

// setupLargeTree builds roots production trees with fanout children per assembly, depth levels deep.
// Rows are emitted children first so the sequencer has to reorder everything.
func setupLargeTree(roots, fanout, depth int) []*entities.Part {
	var rows [][3]string
	var build func(position string, level int)
	build = func(position string, level int) {
		if level < depth {
			for i := 1; i <= fanout; i++ {
				build(fmt.Sprintf("%s.%d", position, i), level+1)
			}
		}
		number := fmt.Sprintf("M-2022-%02d-%s", level, position)
		if level == depth {
			number = "PURCHASED_" + position
		}
		rows = append(rows, [3]string{position, "3", number})
	}
	for r := 1; r <= roots; r++ {
		build(fmt.Sprintf("%d", r), 1)
	}
	return partsFrom(rows...)
}
