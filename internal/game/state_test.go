package game

import (
	"testing"

	"stockgame/internal/schedule"
)

// newTestState builds a two-stock game matching the scenarios in the
// design doc: Acme at 100 with 500 available, Globex at 50 with 200.
func newTestState(t *testing.T) *State {
	t.Helper()
	stocks := []schedule.Stock{
		{Name: "Acme", InitialQuantity: 500, Prices: []int64{100, 110, 0, 140}},
		{Name: "Globex", InitialQuantity: 200, Prices: []int64{50, 45, 60}},
	}
	return NewState(stocks, 1_000_000, 20, "welcome")
}

func mustRegister(t *testing.T, s *State, nickname string) *Player {
	t.Helper()
	p, err := s.Register(nickname)
	if err != nil {
		t.Fatalf("Register(%q): %v", nickname, err)
	}
	return p
}

// checkConservation asserts that player holdings plus the market's
// remaining quantity add up to each stock's initial float.
func checkConservation(t *testing.T, s *State) {
	t.Helper()
	for _, st := range s.Schedule {
		held := int64(0)
		for _, p := range s.Players {
			held += p.Portfolio[st.Name]
		}
		e := s.marketEntry(st.Name)
		if e == nil {
			t.Fatalf("stock %q missing from market", st.Name)
		}
		if held+e.Quantity != st.InitialQuantity {
			t.Fatalf("%s: held %d + remaining %d != initial %d",
				st.Name, held, e.Quantity, st.InitialQuantity)
		}
	}
}
