package rest

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vparedes/menuadmin/internal/backend"
)

const (
	// changesPath is the websocket endpoint delivering one JSON frame per
	// menu row change.
	changesPath = "/v1/menu/changes"

	readWait = 60 * time.Second
	pingGap  = 25 * time.Second
)

// Subscribe opens the change feed. The subscription lives until Close; a
// broken connection closes the event channel without reconnecting (the page
// tolerates a stale feed, it reconciles on every reload anyway).
func (c *Client) Subscribe(ctx context.Context) (backend.Subscription, error) {
	header := http.Header{}
	c.setAuth(header)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL(), header)
	if err != nil {
		e := &backend.Error{Op: "subscribe", Message: err.Error()}
		if resp != nil {
			e.Status = resp.StatusCode
		}
		return nil, e
	}

	sub := &subscription{
		conn:   conn,
		events: make(chan backend.ChangeEvent, 16),
		done:   make(chan struct{}),
	}
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	go sub.readLoop()
	go sub.pingLoop()
	return sub, nil
}

func (c *Client) wsURL() string {
	url := c.baseURL + changesPath
	switch {
	case strings.HasPrefix(url, "https://"):
		return "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		return "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url
}

type subscription struct {
	conn      *websocket.Conn
	events    chan backend.ChangeEvent
	done      chan struct{}
	closeOnce sync.Once
}

func (s *subscription) Events() <-chan backend.ChangeEvent { return s.events }

func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = s.conn.Close()
	})
	return err
}

func (s *subscription) readLoop() {
	defer close(s.events)
	for {
		var ev backend.ChangeEvent
		if err := s.conn.ReadJSON(&ev); err != nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *subscription) pingLoop() {
	ticker := time.NewTicker(pingGap)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}
