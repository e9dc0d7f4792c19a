package processing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
)

const (
	colPosition = "Pos."
	colQuantity = "Qty."
	colNumber   = "Part number"
	colName     = "Part name"
	colSupplier = "Supplier"
)

type expectedPart struct {
	toOrder        entities.Quantity
	partType       entities.PartType
	fileType       entities.FileType
	supplier       string
	ancestors      []string
	parentAssembly string
}

type fixtureRow struct {
	attributes map[string]string
	expected   expectedPart
}

// layoutRows is a small layout with one production assembly holding a purchased valve
// (with a part nested inside it) and a standard screw.
var layoutRows = []fixtureRow{
	{
		attributes: map[string]string{
			colPosition: "1", colQuantity: "1", colNumber: "M-2022-01-00",
			colName: "Assembly module", colSupplier: "",
		},
		expected: expectedPart{
			toOrder: 2, partType: entities.PartTypeProduction, fileType: entities.FileTypeAssembly,
			supplier: "", ancestors: []string{}, parentAssembly: "M-2022-00 Layout",
		},
	},
	{
		attributes: map[string]string{
			colPosition: "1-1", colQuantity: "1", colNumber: "193 138",
			colName: "Non-return valve GRLA", colSupplier: "FESTO",
		},
		expected: expectedPart{
			toOrder: 2, partType: entities.PartTypePurchased, fileType: entities.FileTypePart,
			supplier: "Festo", ancestors: []string{"1"}, parentAssembly: "M-2022-01-00",
		},
	},
	{
		attributes: map[string]string{
			colPosition: "1-1-1", colQuantity: "1", colNumber: "Some junkie part",
			colName: "Inside Festo GRLA", colSupplier: "FESTO",
		},
		expected: expectedPart{
			toOrder: 2, partType: entities.PartTypeJunk, fileType: entities.FileTypePart,
			supplier: "Festo", ancestors: []string{"1", "1-1"}, parentAssembly: "193 138",
		},
	},
	{
		attributes: map[string]string{
			colPosition: "1-7", colQuantity: "2", colNumber: "DIN 912 M6 x 10",
			colName: "Hexagon head screws", colSupplier: "NORELEM",
		},
		expected: expectedPart{
			toOrder: 4, partType: entities.PartTypeFastener, fileType: entities.FileTypePart,
			supplier: "Norelem", ancestors: []string{"1"}, parentAssembly: "M-2022-01-00",
		},
	},
}

func layoutSettings() entities.Settings {
	return entities.Settings{
		Columns: entities.ColumnMapping{
			Position: colPosition,
			Quantity: colQuantity,
			Number:   colNumber,
			Name:     colName,
		},
		MainAssemblyName:       "M-2022-00 Layout",
		MainAssemblySets:       2,
		ProductionPartKeywords: []string{"M-2022"},
		JunkPartKeywords:       []string{"iMike"},
		NormalizedColumns:      []string{colSupplier},
		JunkForPurchasedNests:  true,
	}
}

func layoutBOM() *entities.BOM {
	bom := entities.NewBOM("M-2022-00 Layout")
	bom.ID = "layout"
	bom.Settings = layoutSettings()
	bom.ImportedColumns = []string{colPosition, colQuantity, colNumber, colName, colSupplier}
	for _, row := range layoutRows {
		bom.CreatePart(row.attributes)
	}
	return bom
}

// partsFrom builds parts from position/quantity/number triples
func partsFrom(rows ...[3]string) []*entities.Part {
	parts := make([]*entities.Part, 0, len(rows))
	for _, row := range rows {
		parts = append(parts, entities.NewPart(map[string]string{
			colPosition: row[0],
			colQuantity: row[1],
			colNumber:   row[2],
			colName:     "",
		}))
	}
	return parts
}

// newValidatedProcessor returns a processor whose collection passed validation
func newValidatedProcessor(t *testing.T, parts []*entities.Part, settings entities.Settings) *Processor {
	t.Helper()
	p := newProcessor(parts, settings, services.DefaultFastenerLibrary())
	report := Validate(p.initial, settings.Columns)
	require.NoError(t, report.Err())
	p.delimiter = report.Delimiter
	return p
}

func positionsOf(parts []*entities.Part) []string {
	positions := make([]string, len(parts))
	for i, part := range parts {
		positions[i] = part.Attributes[colPosition]
	}
	return positions
}

func byPosition(parts []*entities.Part) map[string]*entities.Part {
	index := make(map[string]*entities.Part, len(parts))
	for _, part := range parts {
		index[part.Attributes[colPosition]] = part
	}
	return index
}
