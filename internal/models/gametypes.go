package models

type GameType string

const (
	GameTypeSlots       GameType = "slots"
	GameTypeDice        GameType = "dice"
	GameTypeBlackjack   GameType = "blackjack"
	GameTypeWheel       GameType = "wheel"
	GameTypeJackpot     GameType = "jackpot"
	GameTypeMines       GameType = "mines"
	GameTypeRoulette    GameType = "roulette"
	GameTypeCoinFlip    GameType = "coinflip"
	GameTypeCardDraw    GameType = "carddraw"
	GameTypeNumberGuess GameType = "numberguess"
)

// SingleShotGameTypes are the games resolved by one request. Blackjack and
// mines run as multi-step rounds with their own endpoints.
var SingleShotGameTypes = []GameType{
	GameTypeSlots,
	GameTypeDice,
	GameTypeWheel,
	GameTypeJackpot,
	GameTypeRoulette,
	GameTypeCoinFlip,
	GameTypeCardDraw,
	GameTypeNumberGuess,
}

func (g GameType) Valid() bool {
	switch g {
	case GameTypeSlots, GameTypeDice, GameTypeBlackjack, GameTypeWheel,
		GameTypeJackpot, GameTypeMines, GameTypeRoulette, GameTypeCoinFlip,
		GameTypeCardDraw, GameTypeNumberGuess:
		return true
	}
	return false
}
