package entities

import (
	"errors"
	"fmt"
)

// ErrColumnNotSet is returned when a column role is used before a column name was bound to it
var ErrColumnNotSet = errors.New("column name is not set")

// ColumnRole names a semantic field of a part
type ColumnRole string

const (
	RolePosition ColumnRole = "Part position"
	RoleQuantity ColumnRole = "Part quantity"
	RoleNumber   ColumnRole = "Part number"
	RoleName     ColumnRole = "Part name"
)

// ColumnMapping binds semantic roles to the imported column names
type ColumnMapping struct {
	Position string `yaml:"position" json:"position"`
	Quantity string `yaml:"quantity" json:"quantity"`
	Number   string `yaml:"number" json:"number"`
	Name     string `yaml:"name" json:"name"`
}

// Column returns the column bound to a role
func (m ColumnMapping) Column(role ColumnRole) string {
	switch role {
	case RolePosition:
		return m.Position
	case RoleQuantity:
		return m.Quantity
	case RoleNumber:
		return m.Number
	case RoleName:
		return m.Name
	default:
		return ""
	}
}

// Require fails with ErrColumnNotSet naming the first unbound role
func (m ColumnMapping) Require(roles ...ColumnRole) error {
	for _, role := range roles {
		if m.Column(role) == "" {
			return fmt.Errorf("the name of the %q column must be set: %w", role, ErrColumnNotSet)
		}
	}
	return nil
}

// PositionOf returns the part position string
func (m ColumnMapping) PositionOf(p *Part) string {
	return p.Attributes[m.Position]
}

// QuantityOf returns the raw part quantity string
func (m ColumnMapping) QuantityOf(p *Part) string {
	return p.Attributes[m.Quantity]
}

// NumberOf returns the part number
func (m ColumnMapping) NumberOf(p *Part) string {
	return p.Attributes[m.Number]
}

// NameOf returns the part name
func (m ColumnMapping) NameOf(p *Part) string {
	return p.Attributes[m.Name]
}
