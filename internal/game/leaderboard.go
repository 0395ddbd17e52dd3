package game

import "sort"

// Leaderboard ranks players by cash plus holdings valued at current
// prices, highest first. Ties fall back to nickname so the ordering is
// stable across broadcasts.
func (s *State) Leaderboard() []LeaderboardEntry {
	out := make([]LeaderboardEntry, 0, len(s.Players))
	for _, p := range s.Players {
		total := p.Cash
		for name, qty := range p.Portfolio {
			if e := s.marketEntry(name); e != nil {
				total += qty * e.Price
			}
		}
		out = append(out, LeaderboardEntry{Nickname: p.Nickname, TotalValue: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalValue != out[j].TotalValue {
			return out[i].TotalValue > out[j].TotalValue
		}
		return out[i].Nickname < out[j].Nickname
	})
	return out
}
