// Package api
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/kardiachain/cryptoverse-backend/dashboard"
	"github.com/kardiachain/cryptoverse-backend/types"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Client to server message types.
const (
	msgNavigate = "navigate"
	msgQuery    = "query"
	msgSelect   = "select"
	msgFocus    = "focus"
	msgToggle   = "toggle"
	msgPage     = "page"
	msgRange    = "range"
	msgOpen     = "open"
)

// Server to client event types.
const (
	eventPage   = "page"
	eventSearch = "search"
	eventError  = "error"
)

type wsMessage struct {
	Type  string `json:"type"`
	Path  string `json:"path,omitempty"`
	Query string `json:"query,omitempty"`
	ID    string `json:"id,omitempty"`
	Page  int    `json:"page,omitempty"`
	Days  int    `json:"days,omitempty"`
}

type wsEvent struct {
	Type   string                `json:"type"`
	Page   *dashboard.PageView   `json:"page,omitempty"`
	Search *dashboard.SearchView `json:"search,omitempty"`
	Error  string                `json:"error,omitempty"`
}

var errUnknownMessage = errors.New("unknown message type")

// session binds one websocket connection to one dashboard shell.
type session struct {
	id     string
	conn   *websocket.Conn
	shell  *dashboard.Shell
	logger *zap.Logger

	writeMu sync.Mutex
}

// Session upgrades the request and runs a shell session until the client
// disconnects. ?path= selects the first route, "/" by default.
func (s *Server) Session(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "Session"))
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		lgr.Warn("cannot upgrade connection", zap.Error(err))
		return nil
	}
	wsSessions.Inc()
	defer wsSessions.Dec()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	id := uuid.NewString()
	sess := &session{
		id:     id,
		conn:   conn,
		shell:  dashboard.NewShell(ctx, s.deps()),
		logger: s.logger.With(zap.String("session", id)),
	}
	sess.shell.OnPage(func(v dashboard.PageView) {
		sess.send(wsEvent{Type: eventPage, Page: &v})
	})
	sess.shell.Search().OnChange(func(v dashboard.SearchView) {
		sess.send(wsEvent{Type: eventSearch, Search: &v})
	})

	path := c.QueryParam("path")
	if path == "" {
		path = "/"
	}
	sess.shell.Navigate(path)

	done := make(chan struct{})
	go sess.keepAlive(done)
	sess.readLoop()
	close(done)

	cancel()
	sess.shell.Close()
	_ = conn.Close()
	return nil
}

func (sess *session) readLoop() {
	sess.conn.SetReadLimit(wsMaxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				sess.logger.Debug("session closed", zap.Error(err))
			}
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sess.send(wsEvent{Type: eventError, Error: "malformed message"})
			continue
		}
		if err := sess.handle(msg); err != nil {
			sess.send(wsEvent{Type: eventError, Error: err.Error()})
		}
	}
}

func (sess *session) handle(msg wsMessage) error {
	shell := sess.shell
	switch msg.Type {
	case msgNavigate:
		shell.Navigate(msg.Path)
	case msgQuery:
		shell.Search().SetQuery(msg.Query)
	case msgSelect:
		shell.Search().Select(msg.ID)
	case msgFocus:
		shell.Search().Focus()
	case msgToggle:
		return shell.ToggleShowAll()
	case msgPage:
		return shell.SetPage(msg.Page)
	case msgRange:
		return shell.SetRange(types.DayRange(msg.Days))
	case msgOpen:
		return shell.Open(msg.ID)
	default:
		return errUnknownMessage
	}
	return nil
}

func (sess *session) send(ev wsEvent) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	_ = sess.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := sess.conn.WriteJSON(ev); err != nil {
		sess.logger.Debug("cannot write event", zap.String("type", ev.Type), zap.Error(err))
	}
}

func (sess *session) keepAlive(done <-chan struct{}) {
	t := time.NewTicker(wsPingPeriod)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			sess.writeMu.Lock()
			err := sess.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
			sess.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
