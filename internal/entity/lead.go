package entity

import (
	"encoding/json"
	"strings"
)

// Stage is the pipeline phase a lead currently occupies.
type Stage string

const (
	StageUniverse  Stage = "universe"
	StageQualified Stage = "qualified"
	StageOutreach  Stage = "outreach"
	StagePitching  Stage = "pitching"
	StageMandates  Stage = "mandates"
	StageRejected  Stage = "rejected"
)

// Stages lists the recognized stages in pipeline order.
var Stages = []Stage{
	StageUniverse,
	StageQualified,
	StageOutreach,
	StagePitching,
	StageMandates,
	StageRejected,
}

// ParseStage lowercases s and reports whether it names a recognized stage.
func ParseStage(s string) (Stage, bool) {
	st := Stage(ASCIILower(s))
	for _, known := range Stages {
		if st == known {
			return st, true
		}
	}
	return st, false
}

// ASCIILower maps A-Z to a-z and leaves every other byte alone. Stage parsing
// and the lead filter both fold with it.
func ASCIILower(s string) string {
	b := []byte(s)
	changed := false
	for i, ch := range b {
		if 'A' <= ch && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// User is the assignee snapshot embedded in a lead.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Role           string `json:"role,omitempty"` // admin, partner, analyst
	OrganizationID string `json:"organizationId,omitempty"`
}

// FullName joins first and last name the way the list views display it.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Company holds the descriptive attributes of the prospective business.
// Financial figures are in INR crore and may be negative (EBITDA, PAT).
type Company struct {
	ID                  ID       `json:"id,omitempty"`
	Name                string   `json:"name"`
	Sector              string   `json:"sector"`
	SubSector           string   `json:"subSector,omitempty"`
	Location            string   `json:"location,omitempty"`
	Website             string   `json:"website,omitempty"`
	BusinessDescription string   `json:"businessDescription,omitempty"`
	ChannelPartner      string   `json:"channelPartner,omitempty"`
	RevenueInrCr        *float64 `json:"revenueInrCr,omitempty"`
	EbitdaInrCr         *float64 `json:"ebitdaInrCr,omitempty"`
	PatInrCr            *float64 `json:"patInrCr,omitempty"`
}

// companyWire is the shape the CRM API actually sends. Older rows carry the
// sub-sector under sub_sector.
type companyWire struct {
	ID                  ID       `json:"id"`
	Name                string   `json:"name"`
	Sector              string   `json:"sector"`
	SubSector           *string  `json:"subSector"`
	SubSectorSnake      *string  `json:"sub_sector"`
	Location            *string  `json:"location"`
	Website             *string  `json:"website"`
	BusinessDescription *string  `json:"businessDescription"`
	ChannelPartner      *string  `json:"channelPartner"`
	RevenueInrCr        *float64 `json:"revenueInrCr"`
	EbitdaInrCr         *float64 `json:"ebitdaInrCr"`
	PatInrCr            *float64 `json:"patInrCr"`
}

// UnmarshalJSON folds the two sub-sector spellings into SubSector. This is the
// only place that knows about sub_sector.
func (c *Company) UnmarshalJSON(data []byte) error {
	var w companyWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*c = Company{
		ID:                  w.ID,
		Name:                w.Name,
		Sector:              w.Sector,
		SubSector:           firstNonEmpty(w.SubSector, w.SubSectorSnake),
		Location:            deref(w.Location),
		Website:             deref(w.Website),
		BusinessDescription: deref(w.BusinessDescription),
		ChannelPartner:      deref(w.ChannelPartner),
		RevenueInrCr:        w.RevenueInrCr,
		EbitdaInrCr:         w.EbitdaInrCr,
		PatInrCr:            w.PatInrCr,
	}
	return nil
}

// Lead is one prospective company's progress through the pipeline.
type Lead struct {
	ID             ID      `json:"id"`
	Stage          string  `json:"stage"`
	AssignedTo     *string `json:"assignedTo"`
	AssignedToUser *User   `json:"assignedToUser,omitempty"`
	Company        Company `json:"company"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

// IsAssigned reports whether the lead references an owner.
func (l *Lead) IsAssigned() bool {
	return l.AssignedTo != nil && *l.AssignedTo != ""
}

func firstNonEmpty(vals ...*string) string {
	for _, v := range vals {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
