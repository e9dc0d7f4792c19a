// Package testing holds part list fixtures shared by the service and interface tests
package testing

import (
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
)

// LayoutCSV is a small CAD export: one production assembly with a purchased valve,
// a part nested inside the valve and a standard screw
const LayoutCSV = `Pos.,Qty.,Part number,Part name,Supplier
1,1,M-2022-01-00,Assembly module,
1-1,1,193 138,Non-return valve GRLA,FESTO
1-1-1,1,Some junkie part,Inside Festo GRLA,FESTO
1-7,2,DIN 912 M6 x 10,Hexagon head screws,NORELEM
`

// InvalidCSV mixes delimiters and carries a non-integer quantity
const InvalidCSV = `Pos.,Qty.,Part number,Part name,Supplier
1,1,M-2022-01-00,Assembly module,
1-1,one,193 138,Non-return valve GRLA,FESTO
1.2,1,DIN 912 M6 x 10,Hexagon head screws,NORELEM
`

// LayoutProfileYAML processes LayoutCSV for two main assembly sets
const LayoutProfileYAML = `
columns:
  position: Pos.
  quantity: Qty.
  number: Part number
  name: Part name
main_assembly_name: M-2022-00 Layout
main_assembly_sets: 2
production_part_keywords: M-2022
junk_part_keywords: iMike
normalized_columns: [Supplier]
import:
  encoding: utf-8
`

// LayoutProfile returns the parsed LayoutProfileYAML, panicking if it does not parse
func LayoutProfile() *config.Profile {
	profile, err := config.ParseProfile([]byte(LayoutProfileYAML))
	if err != nil {
		panic(err)
	}
	return profile
}

// LayoutSettings returns the BOM settings of LayoutProfile
func LayoutSettings() entities.Settings {
	settings, err := LayoutProfile().Settings()
	if err != nil {
		panic(err)
	}
	return settings
}

// ExpectedTreeOrder is the position order LayoutCSV is processed into
var ExpectedTreeOrder = []string{"1", "1-1", "1-1-1", "1-7"}
