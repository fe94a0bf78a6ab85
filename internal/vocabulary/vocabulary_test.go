package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	sectors := Default.Sectors()

	require.Len(t, sectors, 18)
	assert.Equal(t, "Auto Components", sectors[0])
	assert.Equal(t, "Travel and Hospitality", sectors[len(sectors)-1])
	assert.Contains(t, Default.SubSectors("IT"), "IT Services")
	assert.Empty(t, Default.SubSectors("IPP"))
	assert.Empty(t, Default.SubSectors("Space"))
}

func TestCustomDetection(t *testing.T) {
	assert.False(t, Default.IsCustomSector(""))
	assert.False(t, Default.IsCustomSector("Renewables"))
	assert.True(t, Default.IsCustomSector("Space Tech"))

	assert.False(t, Default.IsCustomSubSector("Renewables", "Solar"))
	assert.True(t, Default.IsCustomSubSector("Renewables", "Wind"))
	assert.True(t, Default.IsCustomSubSector("Space Tech", "Launch"))
	assert.False(t, Default.IsCustomSubSector("IT", ""))
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	subs := Default.SubSectors("IT")
	subs[0] = "changed"

	assert.Equal(t, "IT", Default.SubSectors("IT")[0])

	m := Default.SubSectorMap()
	delete(m, "IT")
	assert.NotEmpty(t, Default.SubSectors("IT"))
}

func TestParseRejectsNamelessSector(t *testing.T) {
	_, err := Parse([]byte("sectors:\n  - subSectors: [a]\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("sectors: {"))
	assert.Error(t, err)
}
