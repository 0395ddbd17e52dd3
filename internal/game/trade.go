package game

// Buy applies a buy order and reports whether anything changed. Orders
// are rejected without effect when trading is closed, the player or
// stock is unknown, the quantity is non-positive, the player cannot
// afford the cost, or the market lacks the shares.
func (s *State) Buy(playerID, stockName string, quantity int64) bool {
	if !s.Settings.TradingOpen {
		return false
	}
	p := s.Players[playerID]
	e := s.marketEntry(stockName)
	if p == nil || e == nil || quantity <= 0 {
		return false
	}
	cost := e.Price * quantity
	if p.Cash < cost || e.Quantity < quantity {
		return false
	}
	p.Cash -= cost
	e.Quantity -= quantity
	p.Portfolio[stockName] += quantity
	return true
}

// Sell applies a sell order and reports whether anything changed. The
// structural rejections mirror Buy, plus insufficient holdings. A
// holding sold down to zero is removed from the portfolio entirely.
func (s *State) Sell(playerID, stockName string, quantity int64) bool {
	if !s.Settings.TradingOpen {
		return false
	}
	p := s.Players[playerID]
	e := s.marketEntry(stockName)
	if p == nil || e == nil || quantity <= 0 {
		return false
	}
	if p.Portfolio[stockName] < quantity {
		return false
	}
	p.Cash += e.Price * quantity
	e.Quantity += quantity
	p.Portfolio[stockName] -= quantity
	if p.Portfolio[stockName] == 0 {
		delete(p.Portfolio, stockName)
	}
	return true
}
