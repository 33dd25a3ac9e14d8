package power

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listOutput = `
Existing Power Schemes (* Active)
-----------------------------------
Power Scheme GUID: a1841308-3541-4fab-bc81-f71556f20b4a  (Power saver)
Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced) *
Power Scheme GUID: 8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c  (High performance)
`

func TestParseSchemes(t *testing.T) {
	schemes := ParseSchemes(listOutput)
	require.Len(t, schemes, 3)

	assert.Equal(t, "a1841308-3541-4fab-bc81-f71556f20b4a", schemes[0].GUID)
	assert.Equal(t, "Power saver", schemes[0].Name)
	assert.False(t, schemes[0].Active)

	assert.Equal(t, "381b4222-f694-41f0-9685-ff5bb260df2e", schemes[1].GUID)
	assert.Equal(t, "Balanced", schemes[1].Name)
	assert.True(t, schemes[1].Active)

	assert.Equal(t, "High performance", schemes[2].Name)
}

func TestParseSchemes_Empty(t *testing.T) {
	assert.Empty(t, ParseSchemes(""))
	assert.Empty(t, ParseSchemes("no schemes here\n"))
}

func TestParseSchemes_UppercaseGUID(t *testing.T) {
	out := "Power Scheme GUID: 8C5E7FDA-E8BF-4A96-9A85-A6E23A8C635C  (High performance)\n"
	schemes := ParseSchemes(out)
	require.Len(t, schemes, 1)
	assert.Equal(t, "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c", schemes[0].GUID, "GUIDs are normalized to lowercase")
}

func TestParseActiveScheme(t *testing.T) {
	out := "Power Scheme GUID: 381b4222-f694-41f0-9685-ff5bb260df2e  (Balanced)\n"
	guid, err := ParseActiveScheme(out)
	require.NoError(t, err)
	assert.Equal(t, "381b4222-f694-41f0-9685-ff5bb260df2e", guid)
}

func TestParseActiveScheme_Garbage(t *testing.T) {
	_, err := ParseActiveScheme("powercfg: command not recognized")
	assert.ErrorIs(t, err, ErrNoActiveScheme)
}

func TestFindByLabel(t *testing.T) {
	schemes := ParseSchemes(listOutput)

	tests := []struct {
		name     string
		label    string
		wantGUID string
		found    bool
	}{
		{name: "exact match", label: "High performance", wantGUID: "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c", found: true},
		{name: "case-insensitive", label: "HIGH PERFORMANCE", wantGUID: "8c5e7fda-e8bf-4a96-9a85-a6e23a8c635c", found: true},
		{name: "balanced", label: "balanced", wantGUID: "381b4222-f694-41f0-9685-ff5bb260df2e", found: true},
		{name: "missing", label: "Ultimate Performance", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindByLabel(schemes, tt.label)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantGUID, got.GUID)
			}
		})
	}
}
