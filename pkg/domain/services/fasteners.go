package services

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed standard_fasteners.yaml
var standardFastenersYAML []byte

var digitRunPattern = regexp.MustCompile(`\d+`)

// FastenerStandard is one standard-fastener name fragment with its valid numeric codes
type FastenerStandard struct {
	Fragment string  `yaml:"fragment"`
	Codes    []int64 `yaml:"codes"`
}

// FastenerLibrary is a static lookup table: fragment -> set of standard numbers
type FastenerLibrary struct {
	standards []FastenerStandard
	codes     map[string]map[int64]struct{}
}

// NewFastenerLibrary builds a library from the given standards. Fragments are matched upper-cased.
func NewFastenerLibrary(standards []FastenerStandard) *FastenerLibrary {
	lib := &FastenerLibrary{codes: make(map[string]map[int64]struct{}, len(standards))}
	for _, standard := range standards {
		fragment := strings.ToUpper(strings.TrimSpace(standard.Fragment))
		if fragment == "" {
			continue
		}
		set, ok := lib.codes[fragment]
		if !ok {
			set = make(map[int64]struct{}, len(standard.Codes))
			lib.codes[fragment] = set
			lib.standards = append(lib.standards, FastenerStandard{Fragment: fragment})
		}
		for _, code := range standard.Codes {
			set[code] = struct{}{}
		}
	}
	return lib
}

// ParseFastenerLibrary reads a YAML list of fragment/codes entries
func ParseFastenerLibrary(data []byte) (*FastenerLibrary, error) {
	var standards []FastenerStandard
	if err := yaml.Unmarshal(data, &standards); err != nil {
		return nil, fmt.Errorf("failed to parse fastener library: %w", err)
	}
	return NewFastenerLibrary(standards), nil
}

// DefaultFastenerLibrary returns the built-in DIN/ISO/PN library
func DefaultFastenerLibrary() *FastenerLibrary {
	lib, err := ParseFastenerLibrary(standardFastenersYAML)
	if err != nil {
		panic(err)
	}
	return lib
}

// Fragments returns the known fragments in library order
func (l *FastenerLibrary) Fragments() []string {
	fragments := make([]string, len(l.standards))
	for i, standard := range l.standards {
		fragments[i] = standard.Fragment
	}
	return fragments
}

// Matches reports whether value names a standard fastener: it must contain a fragment
// and one of the digit runs in it must be a standard number listed for that fragment.
func (l *FastenerLibrary) Matches(value string) bool {
	upper := strings.ToUpper(value)
	for _, standard := range l.standards {
		if !strings.Contains(upper, standard.Fragment) {
			continue
		}
		codes := l.codes[standard.Fragment]
		for _, run := range digitRunPattern.FindAllString(upper, -1) {
			number, err := strconv.ParseInt(run, 10, 64)
			if err != nil {
				continue
			}
			if _, ok := codes[number]; ok {
				return true
			}
		}
	}
	return false
}

// MatchesAny reports whether any of the values names a standard fastener
func (l *FastenerLibrary) MatchesAny(values []string) bool {
	for _, value := range values {
		if l.Matches(value) {
			return true
		}
	}
	return false
}
