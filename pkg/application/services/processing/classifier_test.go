package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
)

func classified(t *testing.T, parts []*entities.Part, settings entities.Settings) *Processor {
	t.Helper()
	p := newValidatedProcessor(t, parts, settings)
	require.NoError(t, p.resolveHierarchy())
	require.NoError(t, p.classify())
	return p
}

func TestClassify_Layout(t *testing.T) {
	bom := layoutBOM()
	p := classified(t, bom.Parts(), bom.Settings)

	for i, row := range layoutRows {
		part := p.working[i]
		assert.Equal(t, row.expected.partType, part.Type, "position %s", row.attributes[colPosition])
		assert.Equal(t, row.expected.fileType, part.FileType, "position %s", row.attributes[colPosition])
	}

	valve := p.working[1].Classification
	assert.True(t, valve.IsPurchased)
	assert.False(t, valve.IsJunk)

	nested := p.working[2].Classification
	assert.True(t, nested.IsJunkByPurchasedPartNesting)
	assert.False(t, nested.IsJunkByKeywords)
	assert.True(t, nested.IsJunk)

	screw := p.working[3].Classification
	assert.True(t, screw.IsFastener)
	assert.False(t, screw.IsPurchased)
	assert.False(t, screw.IsJunkByPurchasedPartNesting, "parent assembly is production")
}

func TestClassify_ProductionDominatesFastener(t *testing.T) {
	settings := layoutSettings()
	settings.ProductionPartKeywords = []string{" M-2022 ", ""}
	parts := partsFrom(
		[3]string{"1", "1", "M-2022-01-00 DIN 912"},
		[3]string{"2", "1", "DIN 912 M6 x 10"},
		[3]string{"3", "1", "DIN 9999"},
	)

	p := classified(t, parts, settings)

	production := p.working[0].Classification
	assert.True(t, production.IsProduction)
	assert.True(t, production.IsFastener)
	assert.False(t, production.IsPurchased)
	assert.Equal(t, entities.PartTypeProduction, p.working[0].Type)

	assert.Equal(t, entities.PartTypeFastener, p.working[1].Type)
	assert.Equal(t, entities.PartTypePurchased, p.working[2].Type, "code not listed for DIN")
}

func TestClassify_FastenerFoundInAnyAttribute(t *testing.T) {
	parts := []*entities.Part{entities.NewPart(map[string]string{
		colPosition: "1", colQuantity: "4", colNumber: "SHCS-06", colName: "screw",
		"Standard": "iso 4762",
	})}

	p := classified(t, parts, layoutSettings())
	assert.True(t, p.working[0].Classification.IsFastener)
}

func TestClassify_CustomFastenerLibrary(t *testing.T) {
	parts := partsFrom([3]string{"1", "1", "NORM 17 bolt"})
	p := newValidatedProcessor(t, parts, layoutSettings())
	p.fasteners = services.NewFastenerLibrary([]services.FastenerStandard{{Fragment: "norm", Codes: []int64{17}}})
	require.NoError(t, p.resolveHierarchy())
	require.NoError(t, p.classify())

	assert.Equal(t, entities.PartTypeFastener, p.working[0].Type)
}

func TestClassify_Junk(t *testing.T) {
	tests := []struct {
		name       string
		configure  func(*entities.Settings)
		attributes map[string]string
		want       entities.Classification
	}{
		{
			name:       "keyword in name",
			configure:  func(s *entities.Settings) { s.JunkPartKeywords = []string{"iMike"} },
			attributes: map[string]string{colName: "iMike sticker"},
			want:       entities.Classification{IsPurchased: true, IsJunkByKeywords: true, IsJunk: true},
		},
		{
			name:       "keyword in number",
			configure:  func(s *entities.Settings) { s.JunkPartKeywords = []string{"PKG"} },
			attributes: map[string]string{colNumber: "PKG-001"},
			want:       entities.Classification{IsPurchased: true, IsJunkByKeywords: true, IsJunk: true},
		},
		{
			name:       "keywords are case sensitive",
			configure:  func(s *entities.Settings) { s.JunkPartKeywords = []string{"iMike"} },
			attributes: map[string]string{colName: "IMIKE sticker"},
			want:       entities.Classification{IsPurchased: true},
		},
		{
			name: "every configured field empty",
			configure: func(s *entities.Settings) {
				s.JunkPartKeywords = nil
				s.JunkPartEmptyFields = []string{colSupplier, "Material"}
			},
			attributes: map[string]string{colSupplier: "  "},
			want:       entities.Classification{IsPurchased: true, IsJunkByEmptyFields: true, IsJunk: true},
		},
		{
			name: "one configured field filled",
			configure: func(s *entities.Settings) {
				s.JunkPartKeywords = nil
				s.JunkPartEmptyFields = []string{colSupplier, "Material"}
			},
			attributes: map[string]string{colSupplier: "", "Material": "S235"},
			want:       entities.Classification{IsPurchased: true},
		},
		{
			name: "no production keywords configured",
			configure: func(s *entities.Settings) {
				s.ProductionPartKeywords = []string{" ", ""}
			},
			attributes: map[string]string{colNumber: "M-2022-01-00"},
			want:       entities.Classification{IsPurchased: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := layoutSettings()
			tt.configure(&settings)

			attributes := map[string]string{colPosition: "1", colQuantity: "1", colNumber: "X", colName: "Y"}
			for key, value := range tt.attributes {
				attributes[key] = value
			}

			p := classified(t, []*entities.Part{entities.NewPart(attributes)}, settings)
			assert.Equal(t, tt.want, *p.working[0].Classification)
		})
	}
}

func TestClassify_NestingPolicy(t *testing.T) {
	rows := [][3]string{
		{"1", "1", "M-2022-01-00"},
		{"1-1", "1", "VALVE"},
		{"1-1-1", "1", "SEAL"},
		{"2", "1", "MOTOR"},
		{"2-1", "1", "M-2022-02-00"},
	}

	t.Run("enabled", func(t *testing.T) {
		p := classified(t, partsFrom(rows...), layoutSettings())
		parts := byPosition(p.working)

		assert.False(t, parts["1-1"].Classification.IsJunkByPurchasedPartNesting)
		assert.True(t, parts["1-1-1"].Classification.IsJunkByPurchasedPartNesting)
		assert.True(t, parts["2-1"].Classification.IsJunkByPurchasedPartNesting,
			"production part nested in a purchased part")
		assert.Equal(t, entities.PartTypeJunk, parts["2-1"].Type)
		assert.Equal(t, entities.FileTypeAssembly, parts["1"].FileType)
		assert.Equal(t, entities.FileTypePart, parts["1-1"].FileType, "purchased parts with children stay parts")
	})

	t.Run("disabled", func(t *testing.T) {
		settings := layoutSettings()
		settings.JunkForPurchasedNests = false
		p := classified(t, partsFrom(rows...), settings)
		parts := byPosition(p.working)

		assert.False(t, parts["1-1-1"].Classification.IsJunk)
		assert.Equal(t, entities.PartTypeProduction, parts["2-1"].Type)
	})
}

func TestClassify_Properties(t *testing.T) {
	settings := layoutSettings()
	settings.JunkPartEmptyFields = []string{colName}
	parts := partsFrom(
		[3]string{"1", "1", "M-2022-01-00"},
		[3]string{"1-1", "2", "DIN 912 M5"},
		[3]string{"1-2", "3", "iMike foil"},
		[3]string{"2", "1", "BOUGHT"},
		[3]string{"2-1", "1", "ISO 4762 M4"},
	)

	p := classified(t, parts, settings)
	for _, part := range p.working {
		c := part.Classification
		assert.Equal(t, !c.IsProduction && !c.IsFastener, c.IsPurchased)
		assert.Equal(t, c.IsJunkByKeywords || c.IsJunkByEmptyFields || c.IsJunkByPurchasedPartNesting, c.IsJunk)
		assert.NotEqual(t, entities.PartTypeUnset, part.Type)
	}
}
