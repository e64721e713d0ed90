package trades

import (
	_ "embed"

	"tradewatch-backend/lib/configutil"
	"tradewatch-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

//go:embed committees.json5
var committeesBlob []byte

// only consider a fuzzy roster hit when it is at least this similar,
// below that a member is simply not on file
const committeeMatchThreshold = 0.92

// CommitteeRoster is a read-only mapping of member names to committee
// memberships. It is static data versioned with the code, injected
// into the service rather than consulted through package state.
type CommitteeRoster struct {
	byName map[string][]string
	names  []string
}

func LoadCommitteeRoster() (*CommitteeRoster, error) {
	raw, err := configutil.ReadEmbedded[map[string][]string](committeesBlob)
	if err != nil {
		return nil, err
	}

	roster := &CommitteeRoster{byName: map[string][]string{}}
	for name, committees := range raw {
		key := textutil.NormalizeName(name)
		roster.byName[key] = committees
		roster.names = append(roster.names, key)
	}
	return roster, nil
}

// Lookup resolves a member's committees. Scraped names carry all kinds
// of noise, so an exact normalized match is tried first and a
// JaroWinkler pass picks up the rest.
func (r *CommitteeRoster) Lookup(member string) []string {
	key := textutil.NormalizeName(member)
	if committees, ok := r.byName[key]; ok {
		return committees
	}

	var best string
	var bestSimilarity float64
	for _, name := range r.names {
		similarity := matchr.JaroWinkler(key, name, false)
		if similarity > bestSimilarity {
			bestSimilarity = similarity
			best = name
		}
	}
	if bestSimilarity >= committeeMatchThreshold {
		return r.byName[best]
	}
	return nil
}
