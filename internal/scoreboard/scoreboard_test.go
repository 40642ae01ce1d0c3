package scoreboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreboard_Scenarios(t *testing.T) {
	cases := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "new match starts at 0-0",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Mexico", "Canada"))

				assert.Equal(t, []Match{{Home: "Mexico", Away: "Canada"}}, b.Summary())
			},
		},
		{
			name: "same team on both sides is rejected",
			run: func(t *testing.T) {
				b := New()
				err := b.StartMatch("Brazil", "Brazil")

				require.ErrorIs(t, err, ErrInvalidTeams)
				assert.Zero(t, b.Len())
			},
		},
		{
			name: "team cannot play two ongoing matches",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Brazil", "Argentina"))

				require.ErrorIs(t, b.StartMatch("Brazil", "France"), ErrDuplicateMatch)
				require.ErrorIs(t, b.StartMatch("Italy", "Argentina"), ErrDuplicateMatch)
				require.ErrorIs(t, b.StartMatch("Argentina", "Brazil"), ErrDuplicateMatch)
				require.ErrorIs(t, b.StartMatch("Brazil", "Argentina"), ErrDuplicateMatch)
				assert.Equal(t, 1, b.Len())
			},
		},
		{
			name: "update overwrites the score",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Mexico", "Canada"))
				require.NoError(t, b.UpdateScore("Mexico", "Canada", 2, 1))
				require.NoError(t, b.UpdateScore("Mexico", "Canada", 1, 0))

				assert.Equal(t, []Match{{Home: "Mexico", Away: "Canada", HomeScore: 1, AwayScore: 0}}, b.Summary())
			},
		},
		{
			name: "negative score is rejected and state kept",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("France", "Germany"))
				require.NoError(t, b.UpdateScore("France", "Germany", 1, 1))

				require.ErrorIs(t, b.UpdateScore("France", "Germany", -1, 2), ErrInvalidScore)
				require.ErrorIs(t, b.UpdateScore("France", "Germany", 2, -1), ErrInvalidScore)

				m, ok := b.Lookup("France", "Germany")
				require.True(t, ok)
				assert.Equal(t, 2, m.Total())
			},
		},
		{
			name: "score validation comes before lookup",
			run: func(t *testing.T) {
				b := New()
				require.ErrorIs(t, b.UpdateScore("USA", "Canada", -1, 0), ErrInvalidScore)
			},
		},
		{
			name: "update of unknown match",
			run: func(t *testing.T) {
				b := New()
				require.ErrorIs(t, b.UpdateScore("USA", "Canada", 1, 1), ErrMatchNotFound)
			},
		},
		{
			name: "update needs the exact home/away order",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("USA", "Canada"))
				require.ErrorIs(t, b.UpdateScore("Canada", "USA", 1, 1), ErrMatchNotFound)
			},
		},
		{
			name: "finish removes match and frees both teams",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Mexico", "Canada"))
				require.NoError(t, b.FinishMatch("Mexico", "Canada"))
				assert.Empty(t, b.Summary())

				require.NoError(t, b.StartMatch("Mexico", "Canada"))
				require.NoError(t, b.FinishMatch("Mexico", "Canada"))
				require.NoError(t, b.StartMatch("Canada", "USA"))
			},
		},
		{
			name: "finish of unknown match",
			run: func(t *testing.T) {
				b := New()
				require.ErrorIs(t, b.FinishMatch("England", "Italy"), ErrMatchNotFound)
			},
		},
		{
			name: "summary orders by total score",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Spain", "Brazil"))
				require.NoError(t, b.UpdateScore("Spain", "Brazil", 3, 3))
				require.NoError(t, b.StartMatch("Mexico", "Canada"))
				require.NoError(t, b.UpdateScore("Mexico", "Canada", 2, 1))

				assert.Equal(t, []Match{
					{Home: "Spain", Away: "Brazil", HomeScore: 3, AwayScore: 3},
					{Home: "Mexico", Away: "Canada", HomeScore: 2, AwayScore: 1},
				}, b.Summary())
			},
		},
		{
			name: "equal totals put the most recent start first",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("Poland", "Albania"))
				require.NoError(t, b.UpdateScore("Poland", "Albania", 5, 2))
				require.NoError(t, b.StartMatch("Mexico", "Canada"))
				require.NoError(t, b.UpdateScore("Mexico", "Canada", 2, 2))
				require.NoError(t, b.StartMatch("Spain", "Brazil"))
				require.NoError(t, b.UpdateScore("Spain", "Brazil", 1, 3))
				require.NoError(t, b.StartMatch("Germany", "France"))
				require.NoError(t, b.UpdateScore("Germany", "France", 2, 2))

				assert.Equal(t, []Match{
					{Home: "Poland", Away: "Albania", HomeScore: 5, AwayScore: 2},
					{Home: "Germany", Away: "France", HomeScore: 2, AwayScore: 2},
					{Home: "Spain", Away: "Brazil", HomeScore: 1, AwayScore: 3},
					{Home: "Mexico", Away: "Canada", HomeScore: 2, AwayScore: 2},
				}, b.Summary())
			},
		},
		{
			name: "updating a score keeps its start position",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("A", "B"))
				require.NoError(t, b.StartMatch("C", "D"))
				require.NoError(t, b.UpdateScore("A", "B", 1, 0))
				require.NoError(t, b.UpdateScore("A", "B", 0, 0))

				got := b.Summary()
				require.Len(t, got, 2)
				assert.Equal(t, "C", got[0].Home)
				assert.Equal(t, "A", got[1].Home)
			},
		},
		{
			name: "summary is a copy",
			run: func(t *testing.T) {
				b := New()
				require.NoError(t, b.StartMatch("A", "B"))

				got := b.Summary()
				got[0].HomeScore = 99

				m, _ := b.Lookup("A", "B")
				assert.Zero(t, m.HomeScore)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, tc.run)
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{"3", 3, true},
		{"2.0", 2, true},
		{"1e1", 10, true},
		{"1.5", 0, false},
		{"2.5", 0, false},
		{"-1", 0, false},
		{"-0.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseScore(json.Number(tc.in))
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidScore, "ParseScore(%q)", tc.in)
			continue
		}
		if assert.NoError(t, err, "ParseScore(%q)", tc.in) {
			assert.Equal(t, tc.want, got, "ParseScore(%q)", tc.in)
		}
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := New()
	require.NoError(t, b.StartMatch("Poland", "Albania"))
	require.NoError(t, b.StartMatch("Mexico", "Canada"))
	require.NoError(t, b.StartMatch("Spain", "Brazil"))
	require.NoError(t, b.UpdateScore("Poland", "Albania", 1, 1))
	require.NoError(t, b.FinishMatch("Spain", "Brazil"))

	raw, err := json.Marshal(b.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	b2 := New()
	require.NoError(t, b2.Restore(snap))
	assert.Equal(t, b.Summary(), b2.Summary())

	// new starts must still be more recent than restored ones
	require.NoError(t, b2.StartMatch("Germany", "France"))
	require.NoError(t, b2.UpdateScore("Germany", "France", 2, 0))
	got := b2.Summary()
	require.Len(t, got, 3)
	assert.Equal(t, "Germany", got[0].Home)
	assert.Equal(t, "Poland", got[1].Home)
}

func TestRestore_RejectsBrokenSnapshot(t *testing.T) {
	cases := []struct {
		name string
		snap Snapshot
	}{
		{
			name: "same team twice",
			snap: Snapshot{NextSeq: 2, Matches: []SnapshotMatch{
				{Match: Match{Home: "A", Away: "B"}, Seq: 0},
				{Match: Match{Home: "C", Away: "A"}, Seq: 1},
			}},
		},
		{
			name: "home equals away",
			snap: Snapshot{NextSeq: 1, Matches: []SnapshotMatch{{Match: Match{Home: "A", Away: "A"}}}},
		},
		{
			name: "negative score",
			snap: Snapshot{NextSeq: 1, Matches: []SnapshotMatch{{Match: Match{Home: "A", Away: "B", HomeScore: -1}}}},
		},
		{
			name: "duplicate seq",
			snap: Snapshot{NextSeq: 5, Matches: []SnapshotMatch{
				{Match: Match{Home: "A", Away: "B"}, Seq: 3},
				{Match: Match{Home: "C", Away: "D"}, Seq: 3},
			}},
		},
		{
			name: "counter behind",
			snap: Snapshot{NextSeq: 1, Matches: []SnapshotMatch{{Match: Match{Home: "A", Away: "B"}, Seq: 4}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			require.NoError(t, b.StartMatch("X", "Y"))

			require.Error(t, b.Restore(tc.snap))
			assert.Equal(t, []Match{{Home: "X", Away: "Y"}}, b.Summary())
		})
	}
}
