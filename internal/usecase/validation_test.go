package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/dealflow/internal/entity"
)

func fields(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateCreateLeadInput(t *testing.T) {
	valid := entity.LeadForm{CompanyName: "Acme", Sector: "IT"}

	tests := []struct {
		name   string
		mutate func(f *entity.LeadForm)
		want   []string
	}{
		{"valid minimal", func(f *entity.LeadForm) {}, []string{}},
		{"missing company and sector", func(f *entity.LeadForm) { f.CompanyName = " "; f.Sector = "" }, []string{"companyName", "sector"}},
		{"company too long", func(f *entity.LeadForm) { f.CompanyName = strings.Repeat("a", 256) }, []string{"companyName"}},
		{"company at limit", func(f *entity.LeadForm) { f.CompanyName = strings.Repeat("a", 255) }, []string{}},
		{"sector too long", func(f *entity.LeadForm) { f.Sector = strings.Repeat("s", 101) }, []string{"sector"}},
		{"sub-sector too long", func(f *entity.LeadForm) { f.SubSector = strings.Repeat("s", 151) }, []string{"subSector"}},
		{"custom sector accepted", func(f *entity.LeadForm) { f.Sector = "Space Tech"; f.SubSector = "Launch" }, []string{}},
		{"relative website", func(f *entity.LeadForm) { f.Website = "acme.in" }, []string{"website"}},
		{"ftp website", func(f *entity.LeadForm) { f.Website = "ftp://acme.in" }, []string{"website"}},
		{"https website", func(f *entity.LeadForm) { f.Website = "https://acme.in/about" }, []string{}},
		{"zero revenue", func(f *entity.LeadForm) { f.RevenueInrCr = floatPtr(0) }, []string{"revenueInrCr"}},
		{"negative ebitda and pat", func(f *entity.LeadForm) { f.EbitdaInrCr = floatPtr(-4); f.PatInrCr = floatPtr(-1.5) }, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			assert.Equal(t, tt.want, fields(ValidateCreateLeadInput(f)))
		})
	}
}

func TestValidateResetPassword(t *testing.T) {
	assert.Empty(t, ValidateResetPassword("secret1", "secret1"))
	assert.Equal(t, []string{"password"}, fields(ValidateResetPassword("abc", "abc")))
	assert.Equal(t, []string{"confirmPassword"}, fields(ValidateResetPassword("secret1", "secret2")))
}
