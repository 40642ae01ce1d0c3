package scoreboard

import (
	"errors"
	"fmt"
)

// Snapshot is the serialisable state of a Scoreboard, suitable for Redis.
type Snapshot struct {
	Matches []SnapshotMatch `json:"matches"`
	NextSeq uint64          `json:"nextSeq"`
}

type SnapshotMatch struct {
	Match
	Seq uint64 `json:"seq"`
}

func (b *Scoreboard) Snapshot() Snapshot {
	snap := Snapshot{
		Matches: make([]SnapshotMatch, 0, len(b.matches)),
		NextSeq: b.nextSeq,
	}
	for _, e := range b.matches {
		snap.Matches = append(snap.Matches, SnapshotMatch{Match: e.Match, Seq: e.seq})
	}
	return snap
}

// Restore replaces the board contents with snap. The snapshot is checked
// against the same rules the operations enforce; on error the board is left
// untouched.
func (b *Scoreboard) Restore(snap Snapshot) error {
	teams := make(map[string]struct{}, 2*len(snap.Matches))
	seqs := make(map[uint64]struct{}, len(snap.Matches))
	matches := make([]*entry, 0, len(snap.Matches))

	for _, sm := range snap.Matches {
		if sm.Home == sm.Away {
			return fmt.Errorf("restore: %w: %q", ErrInvalidTeams, sm.Home)
		}
		if sm.HomeScore < 0 || sm.AwayScore < 0 {
			return fmt.Errorf("restore: %w: %s vs %s", ErrInvalidScore, sm.Home, sm.Away)
		}
		for _, team := range []string{sm.Home, sm.Away} {
			if _, dup := teams[team]; dup {
				return fmt.Errorf("restore: %w: %s", ErrDuplicateMatch, team)
			}
			teams[team] = struct{}{}
		}
		if _, dup := seqs[sm.Seq]; dup {
			return fmt.Errorf("restore: duplicate sequence %d", sm.Seq)
		}
		if sm.Seq >= snap.NextSeq {
			return errors.New("restore: sequence counter behind stored matches")
		}
		seqs[sm.Seq] = struct{}{}

		matches = append(matches, &entry{Match: sm.Match, seq: sm.Seq})
	}

	b.matches = matches
	b.nextSeq = snap.NextSeq
	return nil
}
