package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/emulator"
)

// Client is a browser connected to the hub.
type Client struct {
	hub      *hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
		Username   string
	}
	avgLatency  atomic.Uint32 // milliseconds
	connectedAt time.Time
}

// send queues message, dropping it when the client is too slow. The
// hub mutex must be held, so that Send isn't closed meanwhile.
func (c *Client) send(message []byte) {
	select {
	case c.Send <- message:
	default:
	}
}

func (c *Client) latency() uint16 {
	return uint16(min(c.avgLatency.Load(), 0xFFFF))
}

// describe returns the address, user agent, username and ID of the
// client, separated by NUL bytes.
func (c *Client) describe() []byte {
	var data []byte
	data = append(data, c.Metadata.RemoteAddr...)
	data = append(data, 0)
	data = append(data, c.Metadata.UserAgent...)
	data = append(data, 0)
	data = append(data, c.Metadata.Username...)
	data = append(data, 0)
	return append(data, c.ID)
}

// ReadPump handles the messages of the client until the connection is
// closed.
func (c *Client) ReadPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case Control:
			if len(message) >= 2 {
				c.hub.control(c, message[1], message[2:])
			}
		case Command:
			if len(message) >= 2 {
				c.hub.command(c, emulator.Command(message[1]), message[2:])
			}
		case KeepAlive:
		case Closing: // websocket client request close
			return
		default:
			if len(message) == 2 {
				c.hub.input(c, joypad.Button(message[0]), message[1] != 0)
			}
		}
	}
}

// WritePump writes the queued messages to the client, until the hub
// closes Send.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if rtt, ok := roundTrip(c.conn.UnderlyingConn()); ok {
			old := c.avgLatency.Load()
			c.avgLatency.Store((old*9 + uint32(rtt/time.Millisecond)) / 10)
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
