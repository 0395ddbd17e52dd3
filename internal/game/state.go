// Package game holds the authoritative state of one trading game and
// every mutation the server can apply to it. Nothing here touches the
// network; the hub owns a single State and calls into it from one
// goroutine, so no locking is needed.
package game

import (
	"errors"

	"stockgame/internal/schedule"
)

var (
	ErrNicknameTaken = errors.New("nickname already taken")
	ErrGameFull      = errors.New("game is full")
)

// Settings is the game-master-controlled portion of the state. It is
// broadcast verbatim to every client.
type Settings struct {
	InitialCash  int64  `json:"initialCash"`
	MaxPlayers   int    `json:"maxPlayers"`
	CurrentRound int    `json:"currentRound"`
	TradingOpen  bool   `json:"tradingOpen"`
	CurrentNews  string `json:"currentNews"`
}

type Player struct {
	ID        string           `json:"id"`
	Nickname  string           `json:"nickname"`
	Cash      int64            `json:"cash"`
	Portfolio map[string]int64 `json:"portfolio"`
}

// MarketEntry is a stock's live view for the current round. Price comes
// from the schedule and never moves within a round; trades only change
// the remaining quantity.
type MarketEntry struct {
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	PreviousPrice int64  `json:"previousPrice"`
	Quantity      int64  `json:"quantity"`
}

type LeaderboardEntry struct {
	Nickname   string `json:"nickname"`
	TotalValue int64  `json:"totalValue"`
}

type State struct {
	Schedule []schedule.Stock
	Market   []MarketEntry
	Players  map[string]*Player
	Settings Settings

	welcomeNews string
}

func NewState(stocks []schedule.Stock, initialCash int64, maxPlayers int, welcomeNews string) *State {
	s := &State{
		Schedule: stocks,
		Players:  make(map[string]*Player),
		Settings: Settings{
			InitialCash:  initialCash,
			MaxPlayers:   maxPlayers,
			CurrentRound: 1,
			TradingOpen:  true,
			CurrentNews:  welcomeNews,
		},
		welcomeNews: welcomeNews,
	}
	s.DeriveRound(1)
	return s
}

func (s *State) marketEntry(name string) *MarketEntry {
	for i := range s.Market {
		if s.Market[i].Name == name {
			return &s.Market[i]
		}
	}
	return nil
}
