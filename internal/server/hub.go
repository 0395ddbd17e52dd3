// Package server owns the websocket side of the game: connection
// lifecycle, command routing by connection role, and full-state
// broadcasts. All game state is mutated by a single goroutine (Run), so
// every command is applied atomically with respect to every other.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"stockgame/internal/game"
)

const (
	pingPeriod = 45 * time.Second
	pongWait   = 90 * time.Second

	kickedText   = "The Game Master has removed you from the game."
	gameOverText = "The Game Master has ended the game. You will be returned to the main screen."
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

type role int

const (
	roleUnclaimed role = iota
	rolePlayer
	roleAdmin
)

type client struct {
	conn *websocket.Conn
	out  chan any
	done chan struct{}

	// Owned by the hub loop; never touched from connection goroutines.
	role     role
	playerID string
}

// preparedMsg is JSON already marshaled by the hub loop. Broadcast
// snapshots reference live game state, so they must be serialized before
// they cross into a writer goroutine.
type preparedMsg []byte

// closeAfterFlush tells the writer to close the connection once every
// message queued ahead of it has been written.
type closeAfterFlush struct{}

func (c *client) send(v any) {
	select {
	case c.out <- v:
	default:
	}
}

func (c *client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case v := <-c.out:
			switch m := v.(type) {
			case preparedMsg:
				_ = c.conn.WriteMessage(websocket.TextMessage, m)
			case closeAfterFlush:
				_ = c.conn.Close()
				return
			default:
				_ = c.conn.WriteJSON(v)
			}
		case <-ping.C:
			_ = c.conn.WriteMessage(websocket.PingMessage, nil)
		case <-c.done:
			return
		}
	}
}

type eventKind int

const (
	evJoin eventKind = iota
	evMessage
	evLeave
)

type event struct {
	kind eventKind
	cl   *client
	data []byte
}

// Hub multiplexes every connection over one inbound event queue and
// applies commands to the game state in strict arrival order.
type Hub struct {
	game   *game.State
	secret string

	clients  map[*client]struct{}
	byPlayer map[string]*client
	admin    *client

	events chan event
	quit   chan struct{}
}

func NewHub(st *game.State, adminSecret string) *Hub {
	return &Hub{
		game:     st,
		secret:   adminSecret,
		clients:  make(map[*client]struct{}),
		byPlayer: make(map[string]*client),
		events:   make(chan event, 256),
		quit:     make(chan struct{}),
	}
}

// Run processes inbound events until ctx is canceled. It is the only
// goroutine that touches the game state or connection roles.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.quit)
	for {
		select {
		case <-ctx.Done():
			for cl := range h.clients {
				_ = cl.conn.Close()
			}
			return
		case ev := <-h.events:
			switch ev.kind {
			case evJoin:
				h.clients[ev.cl] = struct{}{}
			case evMessage:
				h.dispatch(ev.cl, ev.data)
			case evLeave:
				h.drop(ev.cl)
			}
		}
	}
}

func (h *Hub) post(ev event) {
	select {
	case h.events <- ev:
	case <-h.quit:
	}
}

// ServeWS upgrades the connection and pumps its messages into the hub's
// event queue.
func (h *Hub) ServeWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		cl := &client{conn: conn, out: make(chan any, 256), done: make(chan struct{})}
		h.post(event{kind: evJoin, cl: cl})
		go cl.writeLoop()

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			return nil
		})
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if mt == websocket.TextMessage {
				h.post(event{kind: evMessage, cl: cl, data: data})
			}
		}
		h.post(event{kind: evLeave, cl: cl})
	}
}

// sendAndClose queues a final message and a deferred close so the
// message flushes first. If the queue is full the connection is closed
// immediately.
func (h *Hub) sendAndClose(cl *client, v any) {
	select {
	case cl.out <- v:
		select {
		case cl.out <- closeAfterFlush{}:
			return
		default:
		}
	default:
	}
	_ = cl.conn.Close()
}

func (h *Hub) drop(cl *client) {
	if _, ok := h.clients[cl]; !ok {
		return
	}
	delete(h.clients, cl)
	close(cl.done)
	switch cl.role {
	case roleAdmin:
		if h.admin == cl {
			h.admin = nil
		}
		log.Printf("game master disconnected")
	case rolePlayer:
		delete(h.byPlayer, cl.playerID)
		h.game.Remove(cl.playerID)
		h.broadcast()
	}
}

func (h *Hub) dispatch(cl *client, data []byte) {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Type == "register_admin" {
		h.registerAdmin(cl, msg.Secret)
		return
	}
	if cl.role == roleAdmin {
		h.handleAdmin(msg)
		return
	}
	h.handlePlayer(cl, msg)
}

// registerAdmin claims the single admin slot; the last connection to
// present the right secret wins and any previous admin is demoted. A
// wrong secret is ignored outright, like any other invalid command.
func (h *Hub) registerAdmin(cl *client, secret string) {
	if secret != h.secret {
		return
	}
	if h.admin != nil && h.admin != cl {
		h.admin.role = roleUnclaimed
	}
	if cl.role == rolePlayer {
		delete(h.byPlayer, cl.playerID)
		h.game.Remove(cl.playerID)
		cl.playerID = ""
	}
	cl.role = roleAdmin
	h.admin = cl
	log.Printf("game master connected")
	cl.send(adminOKMsg{Type: "admin_ok"})
	h.broadcast()
}

func (h *Hub) handlePlayer(cl *client, msg inbound) {
	switch msg.Type {
	case "claim_player":
		nick := strings.TrimSpace(msg.Nickname)
		if nick == "" || h.game.NicknameTaken(nick) {
			cl.send(errorMsg{Type: "error", Message: "This nickname is already taken."})
			return
		}
		cl.send(claimedMsg{Type: "claimed", Nickname: nick})
	case "register":
		if cl.role != roleUnclaimed {
			return
		}
		h.registerPlayer(cl, strings.TrimSpace(msg.Nickname))
	case "buy":
		if h.game.Buy(cl.playerID, msg.StockName, quantity(msg)) {
			h.broadcast()
		}
	case "sell":
		if h.game.Sell(cl.playerID, msg.StockName, quantity(msg)) {
			h.broadcast()
		}
	}
}

func (h *Hub) registerPlayer(cl *client, nickname string) {
	if nickname == "" {
		h.sendAndClose(cl, errorMsg{Type: "error", Message: "A nickname is required."})
		return
	}
	p, err := h.game.Register(nickname)
	if err != nil {
		text := "Registration failed."
		switch {
		case errors.Is(err, game.ErrNicknameTaken):
			text = "This nickname is already taken."
		case errors.Is(err, game.ErrGameFull):
			text = "The game is full."
		}
		h.sendAndClose(cl, errorMsg{Type: "error", Message: text})
		return
	}
	cl.role = rolePlayer
	cl.playerID = p.ID
	h.byPlayer[p.ID] = cl
	log.Printf("player %q registered", nickname)
	cl.send(registeredMsg{Type: "registered", PlayerID: p.ID})
	h.broadcast()
}

func (h *Hub) handleAdmin(msg inbound) {
	switch msg.Type {
	case "broadcast_news":
		h.game.SetNews(msg.Message)
	case "toggle_trading":
		h.game.ToggleTrading()
	case "advance_round":
		h.game.AdvanceRound()
		log.Printf("round advanced to %d", h.game.Settings.CurrentRound)
	case "delete_player":
		p := h.game.FindByNickname(msg.Nickname)
		if p == nil {
			break
		}
		if c, ok := h.byPlayer[p.ID]; ok {
			h.sendAndClose(c, kickedMsg{Type: "kicked", Message: kickedText})
			c.role = roleUnclaimed
			c.playerID = ""
			delete(h.byPlayer, p.ID)
		}
		h.game.Remove(p.ID)
		log.Printf("player %q removed by game master", msg.Nickname)
	case "reset_game":
		for c := range h.clients {
			if c.role == roleAdmin {
				continue
			}
			h.sendAndClose(c, gameOverMsg{Type: "game_over", Message: gameOverText})
			c.role = roleUnclaimed
			c.playerID = ""
		}
		h.byPlayer = make(map[string]*client)
		h.game.ResetGame()
		log.Printf("game reset by game master")
	}
	// Every admin command ends with a broadcast so all clients converge,
	// even when nothing structural changed.
	h.broadcast()
}

// broadcast marshals the full snapshot once and fans it out to every
// connection, admin included.
func (h *Hub) broadcast() {
	snap := updateMsg{
		Type:          "update",
		Players:       h.game.Players,
		StockData:     h.game.Market,
		FullStockData: h.game.Schedule,
		GameSettings:  h.game.Settings,
		Leaderboard:   h.game.Leaderboard(),
	}
	b, err := json.Marshal(snap)
	if err != nil {
		log.Printf("marshal update: %v", err)
		return
	}
	for cl := range h.clients {
		cl.send(preparedMsg(b))
	}
}

// quantity coerces the untyped quantity field to a whole share count.
// Anything fractional or unparsable comes back 0, which every trade path
// rejects.
func quantity(msg inbound) int64 {
	switch v := msg.Quantity.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return 0
}
