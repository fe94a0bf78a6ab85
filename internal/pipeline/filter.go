package pipeline

import (
	"strings"

	"github.com/xavierca1/dealflow/internal/entity"
)

// Filter returns the leads that pass every active criterion, in input order.
// The input slice is not modified. An axis set to All is skipped; an empty
// value only matches leads where that attribute is empty too.
//
// Stage is not applied here; see ByStage.
func Filter(leads []entity.Lead, c Criteria) []entity.Lead {
	out := make([]entity.Lead, 0, len(leads))

	term := entity.ASCIILower(c.SearchTerm)
	for i := range leads {
		l := &leads[i]
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		if active(c.Sector) && fold(l.Company.Sector) != fold(c.Sector) {
			continue
		}
		if active(c.SubSector) && fold(l.Company.SubSector) != fold(c.SubSector) {
			continue
		}
		if active(c.AssignedTo) && !matchesAssignee(l, c.AssignedTo) {
			continue
		}
		if active(c.Location) && l.Company.Location != c.Location {
			continue
		}
		out = append(out, *l)
	}
	return out
}

// ByStage narrows an already filtered list to one stage. All, "" and universe
// return the input unchanged, since every lead belongs to the universe view.
func ByStage(leads []entity.Lead, stage string) []entity.Lead {
	want := entity.ASCIILower(stage)
	if want == "" || want == All || want == string(entity.StageUniverse) {
		return leads
	}

	out := make([]entity.Lead, 0)
	for _, l := range leads {
		if entity.ASCIILower(l.Stage) == want {
			out = append(out, l)
		}
	}
	return out
}

func active(v string) bool {
	return v != All
}

func matchesSearch(l *entity.Lead, term string) bool {
	if strings.Contains(entity.ASCIILower(l.Company.Name), term) {
		return true
	}
	if l.AssignedToUser == nil {
		return false
	}
	return strings.Contains(entity.ASCIILower(l.AssignedToUser.FullName()), term)
}

func matchesAssignee(l *entity.Lead, want string) bool {
	if want == Unassigned {
		return !l.IsAssigned()
	}
	return l.IsAssigned() && *l.AssignedTo == want
}
