// Package games implements the outcome computation for every lobby game as
// pure, replayable functions over an injected random source. Payout tables
// live here and nowhere else; balances are owned by the ledger.
package games

import (
	"fmt"
	"math"

	"casino-gateway/internal/models"
)

// Outcome is the result of resolving one wager. WinAmount is derived from
// the bet and multiplier at settlement time; the outcome itself carries no
// balance information.
type Outcome struct {
	Multiplier float64  `json:"multiplier"`
	IsWin      bool     `json:"is_win"`
	Display    []string `json:"display"`
}

// WinAmount applies the multiplier to the bet, rounding down.
func (o Outcome) WinAmount(bet int64) int64 {
	return int64(math.Floor(float64(bet) * o.Multiplier))
}

// Params are the player-chosen inputs for single-shot games. Resolvers
// ignore fields that do not apply to them.
type Params struct {
	Target int
	Over   bool
	Choice string
}

// Resolver computes an outcome for one wager. Implementations must be
// stateless: same params plus same draws means same outcome.
type Resolver interface {
	Resolve(p Params, rng Rand) (Outcome, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(p Params, rng Rand) (Outcome, error)

func (f ResolverFunc) Resolve(p Params, rng Rand) (Outcome, error) {
	return f(p, rng)
}

var registry = map[models.GameType]Resolver{
	models.GameTypeSlots:       ResolverFunc(ResolveSlots),
	models.GameTypeDice:        ResolverFunc(ResolveDice),
	models.GameTypeWheel:       ResolverFunc(ResolveWheel),
	models.GameTypeJackpot:     ResolverFunc(ResolveJackpot),
	models.GameTypeRoulette:    ResolverFunc(ResolveRoulette),
	models.GameTypeCoinFlip:    ResolverFunc(ResolveCoinFlip),
	models.GameTypeCardDraw:    ResolverFunc(ResolveCardDraw),
	models.GameTypeNumberGuess: ResolverFunc(ResolveNumberGuess),
}

// Lookup returns the resolver for a single-shot game type. Blackjack and
// mines run as multi-step rounds and are not registered here.
func Lookup(gameType models.GameType) (Resolver, error) {
	r, ok := registry[gameType]
	if !ok {
		return nil, fmt.Errorf("no resolver for game type %q", gameType)
	}
	return r, nil
}

func won(multiplier float64) bool {
	return multiplier > 1
}
