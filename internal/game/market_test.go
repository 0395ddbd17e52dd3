package game

import "testing"

func TestDeriveRoundPrices(t *testing.T) {
	s := newTestState(t)

	acme := s.marketEntry("Acme")
	if acme.Price != 100 {
		t.Fatalf("round 1 price = %d, want 100", acme.Price)
	}
	// Round 1 has no prior round; previous price mirrors current.
	if acme.PreviousPrice != 100 {
		t.Fatalf("round 1 previous price = %d, want 100", acme.PreviousPrice)
	}

	s.AdvanceRound()
	acme = s.marketEntry("Acme")
	if acme.Price != 110 || acme.PreviousPrice != 100 {
		t.Fatalf("round 2: price=%d prev=%d, want 110/100", acme.Price, acme.PreviousPrice)
	}

	// Round 3 has no Acme price in the schedule.
	s.AdvanceRound()
	acme = s.marketEntry("Acme")
	if acme.Price != 0 || acme.PreviousPrice != 110 {
		t.Fatalf("round 3: price=%d prev=%d, want 0/110", acme.Price, acme.PreviousPrice)
	}

	// Round 4 runs past Globex's schedule entirely.
	s.AdvanceRound()
	if g := s.marketEntry("Globex"); g.Price != 0 {
		t.Fatalf("round 4 Globex price = %d, want 0", g.Price)
	}
	if acme = s.marketEntry("Acme"); acme.Price != 140 {
		t.Fatalf("round 4 Acme price = %d, want 140", acme.Price)
	}
}

func TestDeriveRoundCarriesQuantity(t *testing.T) {
	s := newTestState(t)
	p := mustRegister(t, s, "alice")
	s.Buy(p.ID, "Acme", 40)

	s.AdvanceRound()
	if got := s.marketEntry("Acme").Quantity; got != 460 {
		t.Fatalf("quantity after advance = %d, want 460", got)
	}
	if got := s.marketEntry("Globex").Quantity; got != 200 {
		t.Fatalf("untraded quantity after advance = %d, want 200", got)
	}
}

func TestDeriveRoundIdempotent(t *testing.T) {
	s := newTestState(t)
	p := mustRegister(t, s, "alice")
	s.Buy(p.ID, "Acme", 40)

	s.DeriveRound(2)
	first := append([]MarketEntry(nil), s.Market...)
	s.DeriveRound(2)
	for i, e := range s.Market {
		if e != first[i] {
			t.Fatalf("second derivation changed entry %d: %+v vs %+v", i, e, first[i])
		}
	}
}

func TestFullReset(t *testing.T) {
	s := newTestState(t)
	p := mustRegister(t, s, "alice")
	s.Buy(p.ID, "Acme", 40)
	s.AdvanceRound()

	s.FullReset()
	if got := s.marketEntry("Acme").Quantity; got != 500 {
		t.Fatalf("quantity after reset = %d, want 500", got)
	}
	if got := s.marketEntry("Acme").Price; got != 100 {
		t.Fatalf("price after reset = %d, want round 1 price 100", got)
	}
}
