package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"casino-gateway/internal/models"
)

// scriptRand replays a fixed sequence of draws so outcomes are exact.
type scriptRand struct {
	ints   []int
	floats []float64
}

func (r *scriptRand) Intn(n int) int {
	if len(r.ints) == 0 {
		panic("scriptRand: out of ints")
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		panic("scriptRand: scripted value out of range")
	}
	return v
}

func (r *scriptRand) Float64() float64 {
	if len(r.floats) == 0 {
		panic("scriptRand: out of floats")
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestLookupKnowsEverySingleShotGame(t *testing.T) {
	for _, gt := range models.SingleShotGameTypes {
		_, err := Lookup(gt)
		assert.NoError(t, err, "game type %s", gt)
	}

	_, err := Lookup(models.GameTypeBlackjack)
	assert.Error(t, err, "blackjack is multi-step, not single-shot")

	_, err = Lookup(models.GameType("pachinko"))
	assert.Error(t, err)
}

func TestOutcomeWinAmountRoundsDown(t *testing.T) {
	o := Outcome{Multiplier: 1.5}
	assert.Equal(t, int64(150), o.WinAmount(100))
	assert.Equal(t, int64(1), o.WinAmount(1))

	o = Outcome{Multiplier: 0}
	assert.Equal(t, int64(0), o.WinAmount(100))
}

func TestResolveSlots(t *testing.T) {
	diamond := len(SlotSymbols) - 1
	seven := len(SlotSymbols) - 2

	tests := []struct {
		name       string
		reels      []int
		multiplier float64
		isWin      bool
	}{
		{"triple top symbol", []int{diamond, diamond, diamond}, 10, true},
		{"triple second symbol", []int{seven, seven, seven}, 5, true},
		{"triple low symbol", []int{0, 0, 0}, 3, true},
		{"pair adjacent", []int{0, 0, 1}, 1.5, true},
		{"pair split", []int{2, 1, 2}, 1.5, true},
		{"no match", []int{0, 1, 2}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ResolveSlots(Params{}, &scriptRand{ints: tt.reels})
			require.NoError(t, err)
			assert.Equal(t, tt.multiplier, outcome.Multiplier)
			assert.Equal(t, tt.isWin, outcome.IsWin)
			assert.Len(t, outcome.Display, 3)
		})
	}
}

func TestResolveDice(t *testing.T) {
	// Scripted values are die-1, so {4, 3} rolls 5 and 4.
	outcome, err := ResolveDice(Params{Target: 7, Over: true}, &scriptRand{ints: []int{4, 3}})
	require.NoError(t, err)
	assert.Equal(t, float64(2), outcome.Multiplier)
	assert.True(t, outcome.IsWin)
	assert.Equal(t, []string{"5", "4"}, outcome.Display)

	// Sum equal to the target loses both calls.
	outcome, err = ResolveDice(Params{Target: 7, Over: true}, &scriptRand{ints: []int{3, 2}})
	require.NoError(t, err)
	assert.False(t, outcome.IsWin)

	outcome, err = ResolveDice(Params{Target: 7, Over: false}, &scriptRand{ints: []int{3, 2}})
	require.NoError(t, err)
	assert.False(t, outcome.IsWin)

	_, err = ResolveDice(Params{Target: 1}, &scriptRand{})
	assert.Error(t, err)
	_, err = ResolveDice(Params{Target: 13}, &scriptRand{})
	assert.Error(t, err)
}

func TestResolveWheelSegments(t *testing.T) {
	total := 0.0
	for _, s := range WheelSegments {
		total += s.Probability
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	// Draws landing in each cumulative band: 0.30, 0.55, 0.75, 0.90, 0.98, 1.
	tests := []struct {
		draw       float64
		multiplier float64
	}{
		{0.00, 0},
		{0.29, 0},
		{0.30, 1},
		{0.74, 2},
		{0.89, 3},
		{0.97, 5},
		{0.985, 10},
	}

	for _, tt := range tests {
		outcome, err := ResolveWheel(Params{}, &scriptRand{floats: []float64{tt.draw}})
		require.NoError(t, err)
		assert.Equal(t, tt.multiplier, outcome.Multiplier, "draw %v", tt.draw)
	}
}

func TestResolveWheelReturnRate(t *testing.T) {
	const spins = 200000
	rng := NewSeededRand(7)

	returns := make([]float64, spins)
	for i := range returns {
		outcome, err := ResolveWheel(Params{}, rng)
		require.NoError(t, err)
		returns[i] = outcome.Multiplier
	}

	// Expected value of the layout is 1.70.
	assert.InDelta(t, 1.70, stat.Mean(returns, nil), 0.05)
}

func TestJackpotOutcome(t *testing.T) {
	tests := []struct {
		name       string
		draws      []int
		multiplier float64
	}{
		{"five of a kind", []int{2, 2, 2, 2, 2}, 100},
		{"four of a kind", []int{2, 2, 2, 2, 5}, 20},
		{"three of a kind", []int{2, 2, 2, 5, 9}, 5},
		{"one pair refunds", []int{2, 2, 5, 6, 9}, 1},
		{"two pair still refunds", []int{2, 2, 5, 5, 9}, 1},
		{"all distinct", []int{1, 2, 3, 4, 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := jackpotOutcome(tt.draws)
			assert.Equal(t, tt.multiplier, outcome.Multiplier)
			// A bare refund is not a win.
			assert.Equal(t, tt.multiplier > 1, outcome.IsWin)
		})
	}
}

func TestResolveRoulette(t *testing.T) {
	tests := []struct {
		name   string
		number int
		choice string
		isWin  bool
	}{
		{"red hits red", 3, "red", true},
		{"red misses black", 3, "black", false},
		{"black hits black", 2, "black", true},
		{"even hits", 2, "even", true},
		{"odd hits", 3, "odd", true},
		{"zero loses red", 0, "red", false},
		{"zero loses black", 0, "black", false},
		{"zero loses even", 0, "even", false},
		{"zero loses odd", 0, "odd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ResolveRoulette(Params{Choice: tt.choice}, &scriptRand{ints: []int{tt.number}})
			require.NoError(t, err)
			assert.Equal(t, tt.isWin, outcome.IsWin)
			if tt.isWin {
				assert.Equal(t, float64(2), outcome.Multiplier)
			} else {
				assert.Equal(t, float64(0), outcome.Multiplier)
			}
		})
	}

	_, err := ResolveRoulette(Params{Choice: "straight-17"}, &scriptRand{})
	assert.Error(t, err)
}

func TestResolveCoinFlip(t *testing.T) {
	outcome, err := ResolveCoinFlip(Params{Choice: "heads"}, &scriptRand{floats: []float64{0.3}})
	require.NoError(t, err)
	assert.True(t, outcome.IsWin)
	assert.Equal(t, []string{"heads"}, outcome.Display)

	outcome, err = ResolveCoinFlip(Params{Choice: "heads"}, &scriptRand{floats: []float64{0.7}})
	require.NoError(t, err)
	assert.False(t, outcome.IsWin)
	assert.Equal(t, []string{"tails"}, outcome.Display)

	_, err = ResolveCoinFlip(Params{Choice: "edge"}, &scriptRand{})
	assert.Error(t, err)
}

func TestResolveCardDraw(t *testing.T) {
	// Draws are suit index then value index; values run ace-first, so
	// "8" has index 7 and is the lowest high card while the ace is low.
	tests := []struct {
		name     string
		suit     int
		valueIdx int
		choice   string
		isWin    bool
	}{
		{"hearts is red", 0, 3, "red", true},
		{"spades is black", 3, 3, "black", true},
		{"eight is high", 0, 7, "high", true},
		{"king is high", 0, 12, "high", true},
		{"seven is low", 0, 6, "low", true},
		{"ace is low", 0, 0, "low", true},
		{"ace is not high", 0, 0, "high", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ResolveCardDraw(Params{Choice: tt.choice}, &scriptRand{ints: []int{tt.suit, tt.valueIdx}})
			require.NoError(t, err)
			assert.Equal(t, tt.isWin, outcome.IsWin)
		})
	}

	_, err := ResolveCardDraw(Params{Choice: "joker"}, &scriptRand{})
	assert.Error(t, err)
}

func TestResolveNumberGuess(t *testing.T) {
	// Scripted int is drawn-1.
	tests := []struct {
		name       string
		guess      int
		drawn      int
		multiplier float64
	}{
		{"exact", 50, 50, 10},
		{"within 5", 50, 55, 5},
		{"within 10", 50, 40, 3},
		{"within 20", 50, 70, 1.5},
		{"too far", 50, 71, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ResolveNumberGuess(Params{Target: tt.guess}, &scriptRand{ints: []int{tt.drawn - 1}})
			require.NoError(t, err)
			assert.Equal(t, tt.multiplier, outcome.Multiplier)
		})
	}

	_, err := ResolveNumberGuess(Params{Target: 0}, &scriptRand{})
	assert.Error(t, err)
	_, err = ResolveNumberGuess(Params{Target: 101}, &scriptRand{})
	assert.Error(t, err)
}
