// Package config loads processing profiles and service settings
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/csv"
)

// KeywordList accepts either a comma-separated string or a list of strings.
// Blank entries and surrounding whitespace are dropped.
type KeywordList []string

func (k *KeywordList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*k = services.ParseKeywords(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		*k = services.CleanKeywords(values)
		return nil
	default:
		return fmt.Errorf("line %d: keywords must be a string or a list of strings", node.Line)
	}
}

func (k *KeywordList) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*k = services.ParseKeywords(value)
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("keywords must be a string or a list of strings: %w", err)
	}
	*k = services.CleanKeywords(values)
	return nil
}

// SetsValue is the raw main assembly sets input, coerced when the profile is applied
type SetsValue string

func (s *SetsValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: main assembly sets must be a scalar", node.Line)
	}
	*s = SetsValue(node.Value)
	return nil
}

func (s *SetsValue) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*s = SetsValue(value)
		return nil
	}
	*s = SetsValue(strings.TrimSpace(string(data)))
	return nil
}

// Profile is a reusable set of processing settings for one kind of CAD export
type Profile struct {
	Columns                entities.ColumnMapping `yaml:"columns" json:"columns"`
	MainAssemblyName       string                 `yaml:"main_assembly_name" json:"main_assembly_name"`
	MainAssemblySets       SetsValue              `yaml:"main_assembly_sets" json:"main_assembly_sets"`
	ProductionPartKeywords KeywordList            `yaml:"production_part_keywords" json:"production_part_keywords"`
	JunkPartKeywords       KeywordList            `yaml:"junk_part_keywords" json:"junk_part_keywords"`
	JunkPartEmptyFields    KeywordList            `yaml:"junk_part_empty_fields" json:"junk_part_empty_fields"`
	NormalizedColumns      KeywordList            `yaml:"normalized_columns" json:"normalized_columns"`
	JunkForPurchasedNests  *bool                  `yaml:"junk_for_purchased_nests" json:"junk_for_purchased_nests"`
	ExportedColumns        KeywordList            `yaml:"exported_columns" json:"exported_columns"`
	Import                 csv.Options            `yaml:"import" json:"import"`
}

// LoadProfile reads and validates a YAML profile file
func LoadProfile(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", filename, err)
	}
	profile, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", filename, err)
	}
	return profile, nil
}

// ParseProfile decodes and validates a YAML profile
func ParseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Validate fails fast on settings that would make processing impossible
func (p *Profile) Validate() error {
	if err := p.Columns.Require(entities.RolePosition, entities.RoleQuantity, entities.RoleNumber); err != nil {
		return err
	}
	if len(p.JunkPartKeywords) > 0 {
		if err := p.Columns.Require(entities.RoleName); err != nil {
			return err
		}
	}
	if p.MainAssemblySets != "" {
		if _, err := entities.ParseMainAssemblySets(string(p.MainAssemblySets)); err != nil {
			return err
		}
	}
	return p.Import.Validate()
}

// Settings converts the profile to BOM settings
func (p *Profile) Settings() (entities.Settings, error) {
	settings := entities.DefaultSettings()
	settings.Columns = p.Columns
	settings.MainAssemblyName = p.MainAssemblyName
	if p.MainAssemblySets != "" {
		sets, err := entities.ParseMainAssemblySets(string(p.MainAssemblySets))
		if err != nil {
			return entities.Settings{}, err
		}
		settings.MainAssemblySets = sets
	}
	settings.ProductionPartKeywords = p.ProductionPartKeywords
	settings.JunkPartKeywords = p.JunkPartKeywords
	settings.JunkPartEmptyFields = p.JunkPartEmptyFields
	settings.NormalizedColumns = p.NormalizedColumns
	if p.JunkForPurchasedNests != nil {
		settings.JunkForPurchasedNests = *p.JunkForPurchasedNests
	}
	return settings, nil
}

// Apply replaces the BOM's settings. An empty main assembly name keeps the BOM's one.
func (p *Profile) Apply(bom *entities.BOM) error {
	settings, err := p.Settings()
	if err != nil {
		return err
	}
	if settings.MainAssemblyName == "" {
		settings.MainAssemblyName = bom.Settings.MainAssemblyName
	}
	bom.Settings = settings
	return nil
}

// ExportColumns returns the configured export columns, or the imported columns followed
// by the derived ones when none are configured
func (p *Profile) ExportColumns(bom *entities.BOM) []string {
	if len(p.ExportedColumns) > 0 {
		return p.ExportedColumns
	}
	columns := append([]string(nil), bom.ImportedColumns...)
	return append(columns, entities.CustomColumns...)
}
