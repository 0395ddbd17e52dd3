package game

import "testing"

func TestToggleTradingNews(t *testing.T) {
	s := newTestState(t)

	s.ToggleTrading()
	if s.Settings.TradingOpen {
		t.Fatal("expected trading closed")
	}
	if s.Settings.CurrentNews != "--- Trading is now CLOSED ---" {
		t.Fatalf("unexpected news: %q", s.Settings.CurrentNews)
	}

	s.ToggleTrading()
	if !s.Settings.TradingOpen {
		t.Fatal("expected trading open")
	}
	if s.Settings.CurrentNews != "--- Trading is now OPEN ---" {
		t.Fatalf("unexpected news: %q", s.Settings.CurrentNews)
	}
}

func TestAdvanceRoundForcesTradingOpen(t *testing.T) {
	s := newTestState(t)
	s.ToggleTrading() // close the window

	s.AdvanceRound()
	if s.Settings.CurrentRound != 2 {
		t.Fatalf("round = %d, want 2", s.Settings.CurrentRound)
	}
	if !s.Settings.TradingOpen {
		t.Fatal("advance must force trading open")
	}
	if s.Settings.CurrentNews != "--- Round 2 has begun! ---" {
		t.Fatalf("unexpected news: %q", s.Settings.CurrentNews)
	}
}

func TestSetNews(t *testing.T) {
	s := newTestState(t)
	s.SetNews("Acme under investigation")
	if s.Settings.CurrentNews != "Acme under investigation" {
		t.Fatalf("unexpected news: %q", s.Settings.CurrentNews)
	}
}

func TestResetGame(t *testing.T) {
	s := newTestState(t)
	p := mustRegister(t, s, "alice")
	s.Buy(p.ID, "Acme", 100)
	s.AdvanceRound()
	s.ToggleTrading()

	s.ResetGame()
	if len(s.Players) != 0 {
		t.Fatalf("expected empty registry, got %d players", len(s.Players))
	}
	if s.Settings.CurrentRound != 1 {
		t.Fatalf("round = %d, want 1", s.Settings.CurrentRound)
	}
	if !s.Settings.TradingOpen {
		t.Fatal("expected trading open after reset")
	}
	if s.Settings.CurrentNews != "welcome" {
		t.Fatalf("unexpected news: %q", s.Settings.CurrentNews)
	}
	for _, st := range s.Schedule {
		if got := s.marketEntry(st.Name).Quantity; got != st.InitialQuantity {
			t.Fatalf("%s: quantity = %d, want initial %d", st.Name, got, st.InitialQuantity)
		}
	}
}

func TestLeaderboard(t *testing.T) {
	s := newTestState(t)
	a := mustRegister(t, s, "alice")
	mustRegister(t, s, "bob")
	c := mustRegister(t, s, "carol")

	// alice: 990000 cash + 100 Acme at 100 = 1000000 total.
	s.Buy(a.ID, "Acme", 100)
	// carol: 999000 cash + 20 Globex at 50 = 1000000 total.
	s.Buy(c.ID, "Globex", 20)

	lb := s.Leaderboard()
	if len(lb) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lb))
	}
	for _, e := range lb {
		if e.TotalValue != 1_000_000 {
			t.Fatalf("%s total = %d, want 1000000", e.Nickname, e.TotalValue)
		}
	}
	// Ties resolve by nickname for a stable broadcast order.
	if lb[0].Nickname != "alice" || lb[1].Nickname != "bob" || lb[2].Nickname != "carol" {
		t.Fatalf("unexpected order: %+v", lb)
	}

	// A price move reorders the board.
	s.AdvanceRound() // Acme 110, Globex 45
	lb = s.Leaderboard()
	if lb[0].Nickname != "alice" || lb[0].TotalValue != 1_001_000 {
		t.Fatalf("expected alice on top with 1001000, got %+v", lb[0])
	}
	if lb[2].Nickname != "carol" || lb[2].TotalValue != 999_900 {
		t.Fatalf("expected carol last with 999900, got %+v", lb[2])
	}
}
