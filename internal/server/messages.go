package server

import (
	"stockgame/internal/game"
	"stockgame/internal/schedule"
)

// inbound is the flat envelope for every client message; which fields
// matter depends on Type. Quantity is left untyped because form-driven
// UIs send "10" as often as 10.
type inbound struct {
	Type      string `json:"type"`
	Nickname  string `json:"nickname,omitempty"`
	StockName string `json:"stockName,omitempty"`
	Quantity  any    `json:"quantity,omitempty"`
	Message   string `json:"message,omitempty"`
	Secret    string `json:"secret,omitempty"`
}

type claimedMsg struct {
	Type     string `json:"type"`
	Nickname string `json:"nickname"`
}

type registeredMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type adminOKMsg struct {
	Type string `json:"type"`
}

type errorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type kickedMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type gameOverMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// updateMsg is the full-state snapshot pushed to every client after any
// mutation. fullStockData carries the whole schedule so clients can draw
// historical charts.
type updateMsg struct {
	Type          string                  `json:"type"`
	Players       map[string]*game.Player `json:"players"`
	StockData     []game.MarketEntry      `json:"stockData"`
	FullStockData []schedule.Stock        `json:"fullStockData"`
	GameSettings  game.Settings           `json:"gameSettings"`
	Leaderboard   []game.LeaderboardEntry `json:"leaderboard"`
}
