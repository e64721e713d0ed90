package trades

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitteeRosterLookup(t *testing.T) {
	roster, err := LoadCommitteeRoster()
	require.NoError(t, err)

	require.Equal(t, []string{"Financial Services"}, roster.Lookup("Nancy Pelosi"))
	// scraped names arrive with inconsistent casing and spacing
	require.Equal(t, []string{"Financial Services"}, roster.Lookup("  nancy  PELOSI "))
}

func TestCommitteeRosterFuzzyLookup(t *testing.T) {
	roster, err := LoadCommitteeRoster()
	require.NoError(t, err)

	// close misspelling still resolves
	require.Equal(t,
		[]string{"Armed Services", "Agriculture"},
		roster.Lookup("Tommy Tubervile"))
}

func TestCommitteeRosterMiss(t *testing.T) {
	roster, err := LoadCommitteeRoster()
	require.NoError(t, err)

	require.Nil(t, roster.Lookup("Completely Unknown Person"))
	require.Nil(t, roster.Lookup(""))
}
