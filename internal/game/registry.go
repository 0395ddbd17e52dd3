package game

import "github.com/google/uuid"

// Register creates a player record for nickname with the configured
// starting cash and an empty portfolio.
func (s *State) Register(nickname string) (*Player, error) {
	if len(s.Players) >= s.Settings.MaxPlayers {
		return nil, ErrGameFull
	}
	if s.NicknameTaken(nickname) {
		return nil, ErrNicknameTaken
	}
	p := &Player{
		ID:        uuid.NewString(),
		Nickname:  nickname,
		Cash:      s.Settings.InitialCash,
		Portfolio: make(map[string]int64),
	}
	s.Players[p.ID] = p
	return p, nil
}

func (s *State) NicknameTaken(nickname string) bool {
	for _, p := range s.Players {
		if p.Nickname == nickname {
			return true
		}
	}
	return false
}

func (s *State) FindByNickname(nickname string) *Player {
	for _, p := range s.Players {
		if p.Nickname == nickname {
			return p
		}
	}
	return nil
}

// Remove deletes a player record. Removing an unknown id is a no-op, so
// disconnect teardown and admin deletion can race through the same path.
func (s *State) Remove(playerID string) {
	delete(s.Players, playerID)
}
