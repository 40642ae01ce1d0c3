package scoreboard

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

type Match struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

func (m Match) Total() int {
	return m.HomeScore + m.AwayScore
}

type entry struct {
	Match
	seq uint64 // start order, larger = more recent
}

// Scoreboard tracks the matches currently in progress.
// It is not safe for concurrent use; see Service.
type Scoreboard struct {
	matches []*entry
	nextSeq uint64
}

func New() *Scoreboard {
	return &Scoreboard{}
}

// StartMatch adds a new match at 0-0. A team may play in only one
// ongoing match at a time.
func (b *Scoreboard) StartMatch(home, away string) error {
	if home == away {
		return fmt.Errorf("%w: %q", ErrInvalidTeams, home)
	}

	for _, e := range b.matches {
		if e.involves(home) || e.involves(away) {
			return fmt.Errorf("%w: %s vs %s conflicts with %s vs %s", ErrDuplicateMatch, home, away, e.Home, e.Away)
		}
	}

	b.matches = append(b.matches, &entry{
		Match: Match{Home: home, Away: away},
		seq:   b.nextSeq,
	})
	b.nextSeq++
	return nil
}

func (b *Scoreboard) UpdateScore(home, away string, homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("%w: got %d-%d", ErrInvalidScore, homeScore, awayScore)
	}

	i := b.find(home, away)
	if i < 0 {
		return fmt.Errorf("%w: %s vs %s", ErrMatchNotFound, home, away)
	}

	b.matches[i].HomeScore = homeScore
	b.matches[i].AwayScore = awayScore
	return nil
}

func (b *Scoreboard) FinishMatch(home, away string) error {
	i := b.find(home, away)
	if i < 0 {
		return fmt.Errorf("%w: %s vs %s", ErrMatchNotFound, home, away)
	}

	b.matches = slices.Delete(b.matches, i, i+1)
	return nil
}

// Summary returns a copy of the ongoing matches ordered by total score,
// highest first. Equal totals put the most recently started match first.
func (b *Scoreboard) Summary() []Match {
	sorted := slices.Clone(b.matches)
	slices.SortFunc(sorted, func(x, y *entry) int {
		if c := cmp.Compare(y.Total(), x.Total()); c != 0 {
			return c
		}
		return cmp.Compare(y.seq, x.seq)
	})

	out := make([]Match, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, e.Match)
	}
	return out
}

func (b *Scoreboard) Lookup(home, away string) (Match, bool) {
	i := b.find(home, away)
	if i < 0 {
		return Match{}, false
	}
	return b.matches[i].Match, true
}

func (b *Scoreboard) Len() int {
	return len(b.matches)
}

func (b *Scoreboard) find(home, away string) int {
	return slices.IndexFunc(b.matches, func(e *entry) bool {
		return e.Home == home && e.Away == away
	})
}

func (e *entry) involves(team string) bool {
	return e.Home == team || e.Away == team
}

// ParseScore converts a JSON number into a score. Integral values such as
// 2 or 2.0 are accepted; fractions, negatives and non-numbers are rejected
// with ErrInvalidScore.
func ParseScore(n json.Number) (int, error) {
	if v, err := n.Int64(); err == nil {
		if v < 0 || v > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %s", ErrInvalidScore, n)
		}
		return int(v), nil
	}

	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, n.String())
	}
	return int(f), nil
}
