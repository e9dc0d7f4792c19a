package processing

import (
	"fmt"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
)

// MaxGenerations bounds the nesting depth the tree sequencer accepts
const MaxGenerations = 20

// Options carries everything a processing run needs. Nothing is read from globals.
type Options struct {
	Settings entities.Settings
	// Fasteners is the standard-fastener lookup table, DefaultFastenerLibrary when nil
	Fasteners *services.FastenerLibrary
}

// Validate reports configuration errors that prevent a run from starting
func (o Options) Validate() error {
	s := o.Settings
	if err := s.Columns.Require(entities.RolePosition, entities.RoleQuantity, entities.RoleNumber); err != nil {
		return err
	}
	if len(services.CleanKeywords(s.JunkPartKeywords)) > 0 {
		if err := s.Columns.Require(entities.RoleName); err != nil {
			return err
		}
	}
	if s.MainAssemblySets <= 0 {
		return fmt.Errorf("main assembly sets is %d: %w", s.MainAssemblySets, entities.ErrInvalidMainAssemblySets)
	}
	return nil
}

func (o Options) fasteners() *services.FastenerLibrary {
	if o.Fasteners != nil {
		return o.Fasteners
	}
	return services.DefaultFastenerLibrary()
}
