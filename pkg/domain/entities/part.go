package entities

import (
	"strconv"
	"strings"
)

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// PartType is the ordering classification of a part
type PartType string

const (
	PartTypeUnset      PartType = ""
	PartTypeProduction PartType = "production"
	PartTypePurchased  PartType = "purchased"
	PartTypeFastener   PartType = "fastener"
	PartTypeJunk       PartType = "junk"
)

// FileType tells whether a part is drawn as a single part or as an assembly
type FileType string

const (
	FileTypeUnset    FileType = ""
	FileTypePart     FileType = "part"
	FileTypeAssembly FileType = "assembly"
)

// NoParent is the ParentIndex of a top-level part
const NoParent = -1

// Hierarchy holds the parent/child relations of a part inside one processed collection.
// Indices are non-owning references into that collection.
type Hierarchy struct {
	ParentIndex    int
	ParentPosition string
	Ancestors      []string // positions, root first
	Children       []int
	ChildPositions []string
}

// IsTopLevel reports whether the part has no parent
func (h *Hierarchy) IsTopLevel() bool {
	return h.ParentIndex == NoParent
}

// Depth is the generation of the part, 1 for top-level parts
func (h *Hierarchy) Depth() int {
	return len(h.Ancestors) + 1
}

// Classification holds the boolean facts the classifier derives for a part
type Classification struct {
	IsProduction                 bool
	IsFastener                   bool
	IsPurchased                  bool
	IsJunkByKeywords             bool
	IsJunkByEmptyFields          bool
	IsJunkByPurchasedPartNesting bool
	IsJunk                       bool
}

// Part represents one BOM line item. Attributes holds every imported column verbatim;
// the remaining fields are derived by processing and stay nil/unset until their stage has run.
type Part struct {
	Attributes map[string]string

	Hierarchy      *Hierarchy
	ParentAssembly string
	Sets           *Quantity
	ToOrder        *Quantity
	Classification *Classification
	Type           PartType
	FileType       FileType
}

// NewPart creates a part from a raw column mapping. The mapping is copied.
func NewPart(attributes map[string]string) *Part {
	attrs := make(map[string]string, len(attributes))
	for key, value := range attributes {
		attrs[key] = value
	}
	return &Part{Attributes: attrs}
}

// Attribute returns a raw imported value
func (p *Part) Attribute(column string) (string, bool) {
	value, ok := p.Attributes[column]
	return value, ok
}

// SetAttribute overwrites a raw imported value
func (p *Part) SetAttribute(column, value string) {
	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}
	p.Attributes[column] = value
}

// Derived column names exposed to exporters next to the imported ones
const (
	ColumnParentAssembly               = "parent_assembly"
	ColumnFileType                     = "file_type"
	ColumnType                         = "type"
	ColumnSets                         = "sets"
	ColumnToOrder                      = "to_order"
	ColumnParent                       = "parent"
	ColumnChild                        = "child"
	ColumnIsProduction                 = "is_production"
	ColumnIsFastener                   = "is_fastener"
	ColumnIsPurchased                  = "is_purchased"
	ColumnIsJunk                       = "is_junk"
	ColumnIsJunkByKeywords             = "is_junk_by_keywords"
	ColumnIsJunkByEmptyFields          = "is_junk_by_empty_fields"
	ColumnIsJunkByPurchasedPartNesting = "is_junk_by_purchased_part_nesting"
)

// CustomColumns are the derived columns offered for export by default
var CustomColumns = []string{
	ColumnParentAssembly,
	ColumnFileType,
	ColumnType,
	ColumnSets,
	ColumnToOrder,
}

// DiagnosticColumns expose the intermediate processing results
var DiagnosticColumns = []string{
	ColumnParent,
	ColumnChild,
	ColumnIsProduction,
	ColumnIsFastener,
	ColumnIsPurchased,
	ColumnIsJunk,
	ColumnIsJunkByKeywords,
	ColumnIsJunkByEmptyFields,
	ColumnIsJunkByPurchasedPartNesting,
}

// Value resolves a column by name. Imported attributes win over derived columns with the same name.
// Derived values that have not been computed yet resolve to an empty string.
func (p *Part) Value(column string) string {
	if value, ok := p.Attributes[column]; ok {
		return value
	}

	switch column {
	case ColumnParentAssembly:
		return p.ParentAssembly
	case ColumnFileType:
		return string(p.FileType)
	case ColumnType:
		return string(p.Type)
	case ColumnSets:
		return formatQuantity(p.Sets)
	case ColumnToOrder:
		return formatQuantity(p.ToOrder)
	case ColumnParent:
		if p.Hierarchy == nil {
			return ""
		}
		return strings.Join(p.Hierarchy.Ancestors, ", ")
	case ColumnChild:
		if p.Hierarchy == nil {
			return ""
		}
		return strings.Join(p.Hierarchy.ChildPositions, ", ")
	}

	c := p.Classification
	if c == nil {
		return ""
	}
	switch column {
	case ColumnIsProduction:
		return strconv.FormatBool(c.IsProduction)
	case ColumnIsFastener:
		return strconv.FormatBool(c.IsFastener)
	case ColumnIsPurchased:
		return strconv.FormatBool(c.IsPurchased)
	case ColumnIsJunk:
		return strconv.FormatBool(c.IsJunk)
	case ColumnIsJunkByKeywords:
		return strconv.FormatBool(c.IsJunkByKeywords)
	case ColumnIsJunkByEmptyFields:
		return strconv.FormatBool(c.IsJunkByEmptyFields)
	case ColumnIsJunkByPurchasedPartNesting:
		return strconv.FormatBool(c.IsJunkByPurchasedPartNesting)
	}
	return ""
}

func formatQuantity(q *Quantity) string {
	if q == nil {
		return ""
	}
	return strconv.FormatInt(int64(*q), 10)
}
