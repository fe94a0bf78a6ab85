package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyUnmarshalSubSector(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"camel case", `{"name":"A","sector":"IT","subSector":"IT Services"}`, "IT Services"},
		{"snake case", `{"name":"A","sector":"IT","sub_sector":"IT Services"}`, "IT Services"},
		{"camel wins", `{"name":"A","sector":"IT","subSector":"SaaS","sub_sector":"IT Services"}`, "SaaS"},
		{"blank camel falls back", `{"name":"A","sector":"IT","subSector":"  ","sub_sector":"IT Services"}`, "IT Services"},
		{"blank camel alone", `{"name":"A","sector":"IT","subSector":"  "}`, ""},
		{"null both", `{"name":"A","sector":"IT","subSector":null,"sub_sector":null}`, ""},
		{"absent", `{"name":"A","sector":"IT"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Company
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c.SubSector)
		})
	}
}

func TestCompanyUnmarshalNullables(t *testing.T) {
	raw := `{"id":"c1","name":"Acme","sector":"IT","location":null,"website":"https://acme.in","revenueInrCr":12.5,"ebitdaInrCr":-3,"patInrCr":null}`

	var c Company
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, "", c.Location)
	assert.Equal(t, "https://acme.in", c.Website)
	require.NotNil(t, c.RevenueInrCr)
	assert.Equal(t, 12.5, *c.RevenueInrCr)
	require.NotNil(t, c.EbitdaInrCr)
	assert.Equal(t, -3.0, *c.EbitdaInrCr)
	assert.Nil(t, c.PatInrCr)
}

func TestCompanyMarshalUsesCanonicalName(t *testing.T) {
	b, err := json.Marshal(Company{Name: "A", Sector: "IT", SubSector: "IT Services"})
	require.NoError(t, err)

	assert.Contains(t, string(b), `"subSector":"IT Services"`)
	assert.NotContains(t, string(b), "sub_sector")
}

func TestLeadIsAssigned(t *testing.T) {
	empty := ""
	id := "u-1"

	assert.False(t, (&Lead{}).IsAssigned())
	assert.False(t, (&Lead{AssignedTo: &empty}).IsAssigned())
	assert.True(t, (&Lead{AssignedTo: &id}).IsAssigned())
}

func TestParseStage(t *testing.T) {
	st, ok := ParseStage("Qualified")
	assert.True(t, ok)
	assert.Equal(t, StageQualified, st)

	_, ok = ParseStage("archived")
	assert.False(t, ok)
}

func TestParseStageFoldsASCIIOnly(t *testing.T) {
	st, ok := ParseStage("MANDATES")
	assert.True(t, ok)
	assert.Equal(t, StageMandates, st)

	st, ok = ParseStage("\u00d6UTREACH")
	assert.False(t, ok)
	assert.Equal(t, Stage("\u00d6utreach"), st, "non-ASCII letters are left alone")
	assert.Equal(t, ASCIILower("\u00d6UTREACH"), string(st))
}

func TestASCIILower(t *testing.T) {
	assert.Equal(t, "it services", ASCIILower("IT Services"))
	assert.Equal(t, "already", ASCIILower("already"))
	assert.Equal(t, "\u212a", ASCIILower("\u212a"), "kelvin sign is not folded to k")
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Priya", LastName: "Nair"}
	assert.Equal(t, "Priya Nair", u.FullName())
}

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var l Lead
	require.NoError(t, json.Unmarshal([]byte(`{"id":42,"stage":"outreach","company":{"id":"c-7","name":"A","sector":"IT"}}`), &l))
	assert.Equal(t, ID("42"), l.ID)
	assert.Equal(t, ID("c-7"), l.Company.ID)

	var r Remark
	require.NoError(t, json.Unmarshal([]byte(`{"id":"r-1","remark":"call back"}`), &r))
	assert.Equal(t, "r-1", r.ID.String())

	var missing ID
	require.NoError(t, json.Unmarshal([]byte(`null`), &missing))
	assert.Equal(t, ID(""), missing)
	assert.Error(t, json.Unmarshal([]byte(`{}`), &missing))
}
