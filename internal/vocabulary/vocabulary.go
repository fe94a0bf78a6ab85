// Package vocabulary holds the advisory sector and sub-sector lists offered
// by the lead form. Values outside the lists are accepted everywhere.
package vocabulary

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed sectors.yaml
var sectorsYAML []byte

type sectorEntry struct {
	Name       string   `yaml:"name"`
	SubSectors []string `yaml:"subSectors"`
}

type file struct {
	Sectors []sectorEntry `yaml:"sectors"`
}

// Vocabulary is read-only after construction and safe for concurrent use.
type Vocabulary struct {
	sectors []string
	subs    map[string][]string
}

// Default is the embedded list.
var Default = mustParse(sectorsYAML)

// Parse reads a vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sector vocabulary: %w", err)
	}

	v := &Vocabulary{subs: make(map[string][]string, len(f.Sectors))}
	for _, s := range f.Sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("parse sector vocabulary: sector without name")
		}
		v.sectors = append(v.sectors, s.Name)
		v.subs[s.Name] = append([]string{}, s.SubSectors...)
	}
	return v, nil
}

func mustParse(data []byte) *Vocabulary {
	v, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return v
}

// Sectors returns the predefined sectors in display order.
func (v *Vocabulary) Sectors() []string {
	return slices.Clone(v.sectors)
}

// SubSectors returns the options for sector, empty for unknown sectors.
func (v *Vocabulary) SubSectors(sector string) []string {
	return slices.Clone(v.subs[sector])
}

// SubSectorMap returns a copy of the whole sector to sub-sector mapping.
func (v *Vocabulary) SubSectorMap() map[string][]string {
	out := make(map[string][]string, len(v.subs))
	for k, subs := range v.subs {
		out[k] = slices.Clone(subs)
	}
	return out
}

// IsCustomSector reports whether a non-empty sector is outside the list.
func (v *Vocabulary) IsCustomSector(sector string) bool {
	if sector == "" {
		return false
	}
	_, ok := v.subs[sector]
	return !ok
}

// IsCustomSubSector reports whether a non-empty sub-sector is not offered
// for sector. Every sub-sector of a custom sector is custom.
func (v *Vocabulary) IsCustomSubSector(sector, subSector string) bool {
	if subSector == "" {
		return false
	}
	return !slices.Contains(v.subs[sector], subSector)
}
