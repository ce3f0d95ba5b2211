package realtime

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request to a WebSocket, subscribes the connection to
// the user's notification channel and forwards pushes until either side
// closes. The subscription is per connection, so each of a user's sessions
// gets every push.
func (b *RedisBridge) ServeWS(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx, userID)

	go writePump(conn, sub, cancel)
	go readPump(conn, sub, cancel)
	return nil
}

// writePump forwards subscription messages to the peer and keeps the
// connection alive with pings
func writePump(conn *websocket.Conn, sub *redis.PubSub, cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.Channel():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards inbound frames; the stream is one-way. It exists to
// process control messages and notice a dropped peer.
func readPump(conn *websocket.Conn, sub *redis.PubSub, cancel context.CancelFunc) {
	defer func() {
		cancel()
		sub.Close()
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("notification stream closed unexpectedly: %v", err)
			}
			return
		}
	}
}
