// Package pipeline filters a lead collection and counts it per stage.
//
// Everything here is pure: inputs are never mutated and nothing is cached
// between calls, so callers can recompute on every data or criteria change.
package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/xavierca1/dealflow/internal/entity"
)

const (
	// All means "no constraint on this axis".
	All = "all"
	// Unassigned matches leads without an owner. Only valid for AssignedTo.
	Unassigned = "unassigned"
)

// Criteria is the filter state of one browsing session. It is a value type:
// the With* methods return a modified copy. Only All disables an axis; any
// other value, the empty string included, is matched literally.
type Criteria struct {
	SearchTerm string `json:"searchTerm"`
	Sector     string `json:"filterSector"`
	SubSector  string `json:"filterSubSector"`
	AssignedTo string `json:"filterAssignedTo"`
	Location   string `json:"filterLocation"`
	Stage      string `json:"filterStage"`
}

// DefaultCriteria matches every lead.
func DefaultCriteria() Criteria {
	return Criteria{
		Sector:     All,
		SubSector:  All,
		AssignedTo: All,
		Location:   All,
		Stage:      All,
	}
}

// Patch is a partial criteria update. Nil fields keep the current value.
type Patch struct {
	SearchTerm *string `json:"searchTerm,omitempty"`
	Sector     *string `json:"filterSector,omitempty"`
	SubSector  *string `json:"filterSubSector,omitempty"`
	AssignedTo *string `json:"filterAssignedTo,omitempty"`
	Location   *string `json:"filterLocation,omitempty"`
	Stage      *string `json:"filterStage,omitempty"`
}

// Apply returns c with every non-nil field of p written over it.
func (c Criteria) Apply(p Patch) Criteria {
	if p.SearchTerm != nil {
		c.SearchTerm = *p.SearchTerm
	}
	if p.Sector != nil {
		c.Sector = *p.Sector
	}
	if p.SubSector != nil {
		c.SubSector = *p.SubSector
	}
	if p.AssignedTo != nil {
		c.AssignedTo = *p.AssignedTo
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Stage != nil {
		c.Stage = *p.Stage
	}
	return c
}

func (c Criteria) WithSearch(term string) Criteria {
	c.SearchTerm = term
	return c
}

func (c Criteria) WithSector(sector string) Criteria {
	c.Sector = sector
	return c
}

func (c Criteria) WithSubSector(subSector string) Criteria {
	c.SubSector = subSector
	return c
}

func (c Criteria) WithAssignedTo(userID string) Criteria {
	c.AssignedTo = userID
	return c
}

func (c Criteria) WithLocation(location string) Criteria {
	c.Location = location
	return c
}

func (c Criteria) WithStage(stage string) Criteria {
	c.Stage = stage
	return c
}

// Reset is the explicit clear action.
func (c Criteria) Reset() Criteria {
	return DefaultCriteria()
}

// IsDefault reports whether c constrains nothing.
func (c Criteria) IsDefault() bool {
	return c == DefaultCriteria()
}

type criteriaAlias Criteria

// UnmarshalJSON decodes over DefaultCriteria, so keys missing from a stored
// or partial document keep their default value.
func (c *Criteria) UnmarshalJSON(data []byte) error {
	v := criteriaAlias(DefaultCriteria())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Criteria(v)
	return nil
}

// fold is the comparison key for sector and sub-sector values: trimmed,
// ASCII lowercase.
func fold(s string) string {
	return entity.ASCIILower(strings.TrimSpace(s))
}
