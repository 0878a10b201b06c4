package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/pbaille/catkw/internal/normalize"
)

// FoldedSet holds category names compared after normalize.Fold
type FoldedSet map[string]struct{}

// NewFoldedSet folds and collects the non-blank entries
func NewFoldedSet(entries ...string) FoldedSet {
	s := make(FoldedSet, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		s[normalize.Fold(e)] = struct{}{}
	}
	return s
}

// Has reports whether name matches an entry once folded
func (s FoldedSet) Has(name string) bool {
	_, ok := s[normalize.Fold(name)]
	return ok
}

// Stats summarizes how many feed rows a blacklist removes
type Stats struct {
	Total          int `json:"total_rows"`
	Blacklisted    int `json:"blacklisted_rows"`
	NonBlacklisted int `json:"non_blacklisted_rows"`
	EmptyOrMissing int `json:"empty_or_missing"`
}

// BlacklistedPercent returns the share of blacklisted rows
func (s Stats) BlacklistedPercent() float64 {
	return percent(s.Blacklisted, s.Total)
}

// KeptPercent returns the share of rows surviving the blacklist
func (s Stats) KeptPercent() float64 {
	return percent(s.NonBlacklisted, s.Total)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

// Count tallies data rows whose column value is in blacklist.
// Unlike keyword derivation, names are matched case-insensitively.
func Count(r io.Reader, column string, blacklist FoldedSet) (Stats, error) {
	var st Stats
	rs, err := openRows(r, column)
	if err != nil {
		return st, err
	}

	for {
		v, ok, err := rs.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("read row: %w", err)
		}

		st.Total++
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			st.EmptyOrMissing++
			continue
		}
		if blacklist.Has(v) {
			st.Blacklisted++
		}
	}

	st.NonBlacklisted = st.Total - st.Blacklisted
	return st, nil
}
