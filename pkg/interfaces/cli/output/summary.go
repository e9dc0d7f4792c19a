package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// TypeOrder is the order part types are reported in
var TypeOrder = []entities.PartType{
	entities.PartTypeProduction,
	entities.PartTypePurchased,
	entities.PartTypeFastener,
	entities.PartTypeJunk,
}

// TypeSummary aggregates the parts of one type
type TypeSummary struct {
	Type    entities.PartType `json:"type"`
	Parts   int               `json:"parts"`
	ToOrder entities.Quantity `json:"to_order"`
	// PerSet is the quantity to order per main assembly set
	PerSet decimal.Decimal `json:"per_set"`
}

// Summary describes a processed BOM
type Summary struct {
	MainAssemblyName string            `json:"main_assembly_name"`
	MainAssemblySets entities.Quantity `json:"main_assembly_sets"`
	// ProcessedSets is the sets value the to-order quantities were computed with
	ProcessedSets entities.Quantity `json:"processed_sets,omitempty"`
	Parts         int               `json:"parts"`
	Processed     bool              `json:"processed"`
	ByType        []TypeSummary     `json:"by_type"`
}

// Summarize totals the parts of a BOM per type
func Summarize(bom *entities.BOM) Summary {
	summary := Summary{
		MainAssemblyName: bom.Settings.MainAssemblyName,
		MainAssemblySets: bom.Settings.MainAssemblySets,
		Parts:            bom.PartCount(),
		Processed:        bom.IsProcessed(),
	}

	byType := make(map[entities.PartType]*TypeSummary, len(TypeOrder))
	for _, partType := range TypeOrder {
		byType[partType] = &TypeSummary{Type: partType}
	}
	for _, part := range bom.Parts() {
		ts, ok := byType[part.Type]
		if !ok {
			continue
		}
		ts.Parts++
		if part.ToOrder != nil {
			ts.ToOrder += *part.ToOrder
		}
	}

	setsUsed := bom.Settings.MainAssemblySets
	if processed, ok := bom.ProcessedSets(); ok {
		summary.ProcessedSets = processed
		setsUsed = processed
	}

	sets := decimal.NewFromInt(int64(setsUsed))
	for _, partType := range TypeOrder {
		ts := byType[partType]
		ts.PerSet = decimal.Zero
		if sets.IsPositive() {
			ts.PerSet = decimal.NewFromInt(int64(ts.ToOrder)).DivRound(sets, 2)
		}
		summary.ByType = append(summary.ByType, *ts)
	}
	return summary
}

// WriteSummary renders a summary as a text table
func WriteSummary(w io.Writer, summary Summary) error {
	fmt.Fprintf(w, "📊 %s x %d\n", summary.MainAssemblyName, summary.MainAssemblySets)
	fmt.Fprintf(w, "Parts: %d\n\n", summary.Parts)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Type\tParts\tTo order\tPer set\t")
	for _, ts := range summary.ByType {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t\n", ts.Type, ts.Parts, ts.ToOrder, ts.PerSet.StringFixed(2))
	}
	return tw.Flush()
}
