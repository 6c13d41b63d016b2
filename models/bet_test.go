package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBetTarget(t *testing.T) {
	tests := []struct {
		in   string
		want BetTarget
	}{
		{"red", BetTarget{Kind: BetKindColor, Color: ColorRed}},
		{"green", BetTarget{Kind: BetKindColor, Color: ColorGreen}},
		{"violet", BetTarget{Kind: BetKindColor, Color: ColorViolet}},
		{"big", BetTarget{Kind: BetKindSize, Size: SizeBig}},
		{"small", BetTarget{Kind: BetKindSize, Size: SizeSmall}},
		{"0", BetTarget{Kind: BetKindNumber, Number: 0}},
		{"9", BetTarget{Kind: BetKindNumber, Number: 9}},
	}
	for _, tc := range tests {
		got, err := ParseBetTarget(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.in, got.String())
	}

	for _, bad := range []string{"", "blue", "10", "-1", "bigly"} {
		_, err := ParseBetTarget(bad)
		assert.Error(t, err, bad)
	}
}

func TestLedgerDrainExactlyOnce(t *testing.T) {
	l := NewBetLedger()
	l.Append(PendingBet{Target: BetTarget{Kind: BetKindColor, Color: ColorRed}, Stake: 10, RoundID: 5})
	l.Append(PendingBet{Target: BetTarget{Kind: BetKindColor, Color: ColorRed}, Stake: 20, RoundID: 5})
	l.Append(PendingBet{Target: BetTarget{Kind: BetKindSize, Size: SizeBig}, Stake: 30, RoundID: 6})

	drained := l.Drain(5)
	require.Len(t, drained, 2)

	// Second drain for the same round returns nothing.
	assert.Empty(t, l.Drain(5))

	// The other round's bet is untouched.
	remaining := l.Pending()
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(6), remaining[0].RoundID)
}

func TestLedgerDrainEmptyIsSafe(t *testing.T) {
	l := NewBetLedger()
	assert.Empty(t, l.Drain(123))
}

func TestLedgerDuplicateTargetsCoexist(t *testing.T) {
	l := NewBetLedger()
	bet := PendingBet{Target: BetTarget{Kind: BetKindNumber, Number: 7}, Stake: 10, RoundID: 1}
	l.Append(bet)
	l.Append(bet)
	assert.Len(t, l.Pending(), 2)
}

func TestRoundStateCopyIsDeep(t *testing.T) {
	outcome := NewRoundOutcome(3, 9)
	s := RoundState{
		RoundID:        3,
		Phase:          PhaseResolving,
		Outcome:        &outcome,
		RecentOutcomes: []RoundOutcome{outcome},
	}

	c := s.Copy()
	c.Outcome.Number = 0
	c.RecentOutcomes[0].Number = 0

	assert.Equal(t, 9, s.Outcome.Number)
	assert.Equal(t, 9, s.RecentOutcomes[0].Number)
}
