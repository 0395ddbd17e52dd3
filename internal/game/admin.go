package game

import "fmt"

// SetNews replaces the current news banner verbatim.
func (s *State) SetNews(text string) {
	s.Settings.CurrentNews = text
}

// ToggleTrading flips the trading window and announces the change.
func (s *State) ToggleTrading() {
	s.Settings.TradingOpen = !s.Settings.TradingOpen
	if s.Settings.TradingOpen {
		s.Settings.CurrentNews = "--- Trading is now OPEN ---"
	} else {
		s.Settings.CurrentNews = "--- Trading is now CLOSED ---"
	}
}

// AdvanceRound moves to the next round, rederives the market at the new
// round's prices, and forces the trading window open.
func (s *State) AdvanceRound() {
	s.Settings.CurrentRound++
	s.DeriveRound(s.Settings.CurrentRound)
	s.Settings.TradingOpen = true
	s.Settings.CurrentNews = fmt.Sprintf("--- Round %d has begun! ---", s.Settings.CurrentRound)
}

// ResetGame clears every player, returns the settings to round 1 with
// trading open and the welcome banner, and restores every stock to its
// initial quantity.
func (s *State) ResetGame() {
	s.Players = make(map[string]*Player)
	s.Settings.CurrentRound = 1
	s.Settings.TradingOpen = true
	s.Settings.CurrentNews = s.welcomeNews
	s.FullReset()
}
