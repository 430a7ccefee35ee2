package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/remotepad/host/internal/errors"
)

// signalClose signals the client to shut down exactly once.
// Safe to call from multiple goroutines. Only the done channel is
// closed; all senders check done before sending.
func (c *Client) signalClose() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// queue places a message on the client's send channel unless the
// client is shutting down.
func (c *Client) queue(msg Message) {
	select {
	case <-c.done:
	case c.send <- msg:
	}
}

// sendError sends a coded error message to the client without blocking.
// Errors are advisory; if the send buffer is full the message is dropped
// rather than stalling the read loop.
func (c *Client) sendError(code, message string) {
	select {
	case c.send <- NewErrorMessage(code, message):
	default:
		log.Printf("server: client %s send buffer full, dropping error message", c.addr)
	}
}

// writePump continuously sends messages from the send channel to the
// WebSocket. It also sends periodic pings to keep the connection alive
// through NATs and to detect dead peers.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("server: failed to marshal message: %v", err)
				continue
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("server: write error: %v", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads messages from the WebSocket and dispatches them.
//
// Dispatch is synchronous: one goroutine per connection handles events
// in arrival order, so a move burst is never reordered against the
// click that follows it. Malformed or unknown messages are logged and
// skipped; only a transport error ends the connection.
func (c *Client) readPump() {
	defer func() {
		c.server.mu.Lock()
		delete(c.server.clients, c)
		c.server.mu.Unlock()

		c.server.sessions.Disconnect(c.sessionID)
		c.signalClose()

		log.Printf("server: client %s disconnected (%d remaining)", c.addr, c.server.ClientCount())
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))

	// A pong in response to our ping proves the peer is alive.
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				log.Printf("server: read error: %v", err)
			}
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("server: failed to parse message: %v", err)
			continue
		}

		c.dispatch(msg)
	}
}

// dispatch routes one inbound message to its handler.
// The router performs the authentication gate for event messages;
// check_pin is the one message handled before authentication.
func (c *Client) dispatch(msg incomingMessage) {
	switch msg.Type {
	case MessageTypeMove:
		var p MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			log.Printf("server: bad move payload: %v", err)
			c.sendError(apperrors.CodeServerInvalidMessage, "invalid move payload")
			return
		}
		c.server.router.Move(c.sessionID, p.DX, p.DY)

	case MessageTypeClick:
		c.server.router.Click(c.sessionID)

	case MessageTypeMouseDown:
		c.server.router.MouseDown(c.sessionID)

	case MessageTypeMouseUp:
		c.server.router.MouseUp(c.sessionID)

	case MessageTypeScroll:
		var p ScrollPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			log.Printf("server: bad scroll payload: %v", err)
			c.sendError(apperrors.CodeServerInvalidMessage, "invalid scroll payload")
			return
		}
		c.server.router.Scroll(c.sessionID, p.DY)

	case MessageTypeRightClick:
		c.server.router.RightClick(c.sessionID)

	case MessageTypeType:
		var p TypePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			log.Printf("server: bad type payload: %v", err)
			c.sendError(apperrors.CodeServerInvalidMessage, "invalid type payload")
			return
		}
		c.server.router.Type(c.sessionID, p.Text)

	case MessageTypeCheckPin:
		var p CheckPinPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			log.Printf("server: bad check_pin payload: %v", err)
			c.sendError(apperrors.CodeServerInvalidMessage, "invalid check_pin payload")
			return
		}
		c.handleCheckPin(p.Pin)

	default:
		log.Printf("server: unknown message type %q from %s", msg.Type, c.addr)
	}
}

// handleCheckPin verifies a submitted pairing code.
// On a match the device address is trusted durably, this session is
// authenticated, and the client is told so. A mismatch leaves the
// active code in place for another attempt.
func (c *Client) handleCheckPin(pin string) {
	if !c.server.pairing.Submit(pin) {
		c.queue(NewAuthStatusMessage(false, statusInvalidPin))
		return
	}

	c.server.trust.Trust(c.addr)
	c.server.sessions.Authenticate(c.sessionID)
	c.queue(NewAuthStatusMessage(true, statusDeviceTrusted))
}
