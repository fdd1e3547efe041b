// Package protocol implements a thin client for the Guard & Towers game
// server's polling protocol: the engine connects over a websocket,
// receives a position snapshot, and replies with its chosen move.
package protocol

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gnt-ai/searchcore/internal/board"
)

// State is one server-pushed snapshot of the match.
type State struct {
	BothConnected bool   `json:"bothConnected"`
	Turn          string `json:"turn"` // "r" or "b"
	Board         string `json:"board"`
	TimeMs        int64  `json:"time"`
	End           bool   `json:"end"`
	Winner        string `json:"winner,omitempty"`
}

// Reply is the engine's response to a State it was asked to move in.
type Reply struct {
	Move string `json:"move"`
}

// Client holds a single websocket connection to the game server.
type Client struct {
	conn *websocket.Conn
	log  zerolog.Logger
}

// Dial connects to the game server at url.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, log: log.With().Str("component", "protocol").Logger()}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Next blocks for the next State pushed by the server.
func (c *Client) Next() (State, error) {
	var st State
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return State{}, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, err
	}
	return st, nil
}

// Reply sends the engine's chosen move back to the server.
func (c *Client) Reply(m board.Move) error {
	payload, err := json.Marshal(Reply{Move: m.String()})
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// ParseState decodes a State's position string and side-to-move into a
// board.GameState using the §4.1 position grammar.
func ParseState(st State) (*board.GameState, error) {
	return board.ParseFEN(st.Board + " " + st.Turn)
}

// WinnerColor parses a State's winner field, valid only when End is set.
func WinnerColor(st State) board.Color {
	switch st.Winner {
	case "r":
		return board.Red
	case "b":
		return board.Blue
	default:
		return board.NoColor
	}
}

// KeepAlive sends periodic pings so load balancers don't drop an idle
// connection while the engine is still thinking about its move.
func (c *Client) KeepAlive(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.Warn().Err(err).Msg("keepalive ping failed")
				return
			}
		}
	}
}
