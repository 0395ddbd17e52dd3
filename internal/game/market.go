package game

// DeriveRound recomputes the market view for the given round from the
// schedule, carrying the remaining quantity forward from the previous
// view. With no previous entry (first derivation, or right after
// FullReset) a stock starts at its initial quantity. Idempotent for the
// same prior view and round.
func (s *State) DeriveRound(round int) {
	idx := round - 1
	prev := make(map[string]int64, len(s.Market))
	for _, e := range s.Market {
		prev[e.Name] = e.Quantity
	}

	market := make([]MarketEntry, 0, len(s.Schedule))
	for _, st := range s.Schedule {
		qty, carried := prev[st.Name]
		if !carried {
			qty = st.InitialQuantity
		}
		e := MarketEntry{Name: st.Name, Quantity: qty}
		if idx >= 0 && idx < len(st.Prices) {
			e.Price = st.Prices[idx]
		}
		if idx > 0 {
			if idx-1 < len(st.Prices) {
				e.PreviousPrice = st.Prices[idx-1]
			}
		} else {
			e.PreviousPrice = e.Price
		}
		market = append(market, e)
	}
	s.Market = market
}

// FullReset discards all quantity carry-over and rederives round 1 from
// the schedule's initial quantities.
func (s *State) FullReset() {
	s.Market = nil
	s.DeriveRound(1)
}
