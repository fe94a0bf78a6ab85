package pipeline

import "github.com/xavierca1/dealflow/internal/entity"

// Counts maps each recognized stage to a number of leads.
type Counts struct {
	Universe  int `json:"universe"`
	Qualified int `json:"qualified"`
	Outreach  int `json:"outreach"`
	Pitching  int `json:"pitching"`
	Mandates  int `json:"mandates"`
	Rejected  int `json:"rejected"`
}

// Aggregate counts the leads per stage. Universe is the size of the whole
// collection, whatever stage each lead sits in; the other buckets count exact
// (case-insensitive) stage matches. Unknown stages land in no named bucket.
func Aggregate(leads []entity.Lead) Counts {
	c := Counts{Universe: len(leads)}
	for i := range leads {
		st, ok := entity.ParseStage(leads[i].Stage)
		if !ok {
			continue
		}
		switch st {
		case entity.StageQualified:
			c.Qualified++
		case entity.StageOutreach:
			c.Outreach++
		case entity.StagePitching:
			c.Pitching++
		case entity.StageMandates:
			c.Mandates++
		case entity.StageRejected:
			c.Rejected++
		}
	}
	return c
}

// Get returns the bucket for stage, or 0 for an unknown stage.
func (c Counts) Get(stage entity.Stage) int {
	switch stage {
	case entity.StageUniverse:
		return c.Universe
	case entity.StageQualified:
		return c.Qualified
	case entity.StageOutreach:
		return c.Outreach
	case entity.StagePitching:
		return c.Pitching
	case entity.StageMandates:
		return c.Mandates
	case entity.StageRejected:
		return c.Rejected
	}
	return 0
}

// Named sums the five stage buckets other than universe.
func (c Counts) Named() int {
	return c.Qualified + c.Outreach + c.Pitching + c.Mandates + c.Rejected
}

// Overview is what the navigation and list views consume together.
type Overview struct {
	Criteria Criteria      `json:"criteria"`
	Counts   Counts        `json:"counts"`
	Leads    []entity.Lead `json:"leads,omitempty"`
}

// Compute runs Filter then Aggregate.
func Compute(leads []entity.Lead, c Criteria) Overview {
	filtered := Filter(leads, c)
	return Overview{
		Criteria: c,
		Counts:   Aggregate(filtered),
		Leads:    filtered,
	}
}
