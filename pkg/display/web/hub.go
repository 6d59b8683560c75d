package web

import (
	"bytes"
	"context"
	"encoding/binary"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/gameboj/internal/joypad"
	"github.com/thelolagemann/gameboj/pkg/display"
	"github.com/thelolagemann/gameboj/pkg/emulator"
	"github.com/thelolagemann/gameboj/pkg/log"
)

// hub keeps track of the connected clients, and broadcasts the frames
// to them. The earliest connected client is the player, whose input
// drives the emulator, the others are spectators.
type hub struct {
	clients map[*Client]bool
	player  *Client

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{} // closed when run returns

	emu               display.Emulator
	pressed, released chan<- joypad.Button

	settings  settings
	encoder   *encoder
	currentID uint8

	log log.Logger
	mu  sync.Mutex // guards everything above but the channels
}

func newHub(emu display.Emulator, s settings, pressed, released chan<- joypad.Button, logger log.Logger) *hub {
	return &hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		emu:        emu,
		pressed:    pressed,
		released:   released,
		settings:   s,
		encoder:    newEncoder(display.ScreenWidth, display.ScreenHeight),
		log:        logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024 * 16,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeHTTP upgrades the connection to a websocket, and registers a
// new client for it.
func (h *hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)

	// send initial data information
	h.mu.Lock()
	info := h.settings.info(h.emu.Status().IsRunning(), h.emu.Status().IsPaused())
	c.send([]byte{ClientInfo, ClientStatus, info, uint8(h.settings.compressionLevel), uint8(h.settings.framePatchRatio)})
	sync, err := h.encoder.sync()
	h.mu.Unlock()
	if err != nil {
		h.log.Errorf("synchronizing %s: %v", r.RemoteAddr, err)
	}
	for _, msg := range sync {
		c.send(msg)
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.ReadPump()
	go c.WritePump()
}

// newClient creates a new client, not yet registered to the hub.
func (h *hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++
	c := &Client{
		hub:         h,
		conn:        conn,
		Send:        make(chan []byte, 256),
		ID:          h.currentID,
		connectedAt: time.Now(),
	}
	c.Metadata.RemoteAddr = r.RemoteAddr
	c.Metadata.UserAgent = r.Header.Get("User-Agent")
	return c
}

// run dispatches the messages to the clients until ctx is done.
func (h *hub) run(ctx context.Context) {
	defer close(h.done)
	t := time.NewTicker(time.Second)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		case c := <-h.register:
			h.mu.Lock()
			c.send(append([]byte{ClientListSync}, h.clientList(c)...))
			h.clients[c] = true
			if h.player == nil {
				h.promote(c)
			}
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			// is this client still registered
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)

				// notify connected clients that this client has disconnected
				for other := range h.clients {
					other.send([]byte{ClientClosing, c.ID})
				}

				if c == h.player {
					h.player = nil
					if next := h.nextPlayer(); next != nil {
						h.promote(next)
					}
				}
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				c.send(msg)
			}
			h.mu.Unlock()
		case <-t.C:
			// periodic latency updates
			h.mu.Lock()
			data := []byte{ServerInfo}
			for c := range h.clients {
				data = append(data, c.ID)
				data = binary.LittleEndian.AppendUint16(data, c.latency())
			}
			for c := range h.clients {
				c.send(data)
			}
			h.mu.Unlock()
		}
	}
}

// promote makes c the player. h.mu must be held.
func (h *hub) promote(c *Client) {
	h.player = c
	c.send([]byte{PlayerIdentify})
	h.log.Infof("%s is now the player", c.Metadata.RemoteAddr)
}

// clientList describes the clients other than c, one per line. h.mu
// must be held.
func (h *hub) clientList(c *Client) []byte {
	var lines [][]byte
	for cl := range h.clients {
		if cl == c {
			continue
		}
		lines = append(lines, cl.describe())
	}
	return bytes.Join(lines, []byte{'\n'})
}

// nextPlayer returns the client connected the earliest, or nil. h.mu
// must be held.
func (h *hub) nextPlayer() *Client {
	var next *Client
	for c := range h.clients {
		if next == nil || c.connectedAt.Before(next.connectedAt) {
			next = c
		}
	}
	return next
}

// sendAllButClient sends a message to all connected clients except
// the one specified. h.mu must be held.
func (h *hub) sendAllButClient(client *Client, message []byte) {
	for c := range h.clients {
		if c != client {
			c.send(message)
		}
	}
}

// control applies a setting sent by a client.
func (h *hub) control(c *Client, setting Setting, value []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(value) == 0 {
		return
	}
	switch setting {
	case Compression:
		h.settings.compression = value[0] == 1
	case CompressionLevel:
		h.settings.compressionLevel = int(min(value[0], 11))
	case FramePatching:
		h.settings.framePatching = value[0] == 1
	case FrameSkipping:
		h.settings.frameSkipping = value[0] == 1
	case FramePatchingRatio:
		h.settings.framePatchRatio = int(value[0])
	case RegisterUsername:
		c.Metadata.Username = string(value)
		c.send(append([]byte{ClientInfo, RegisterUsername, 0xFF}, c.describe()...))
		h.sendAllButClient(c, append([]byte{ClientInfo, RegisterUsername}, c.describe()...))
		return
	default:
		return
	}
	h.sendAllButClient(c, append([]byte{ClientInfo, setting}, value...))
}

// command forwards an emulator command sent by the player.
func (h *hub) command(c *Client, cmd emulator.Command, data []byte) {
	h.mu.Lock()
	isPlayer := c == h.player
	h.mu.Unlock()
	if !isPlayer {
		return
	}

	resp := h.emu.SendCommand(emulator.CommandPacket{Command: cmd, Data: data})
	if resp.Error != nil {
		c.send(append([]byte{Error}, resp.Error.Error()...))
	}
}

// input forwards a joypad event sent by the player.
func (h *hub) input(c *Client, button joypad.Button, pressed bool) {
	h.mu.Lock()
	isPlayer := c == h.player
	h.mu.Unlock()
	if !isPlayer || !slices.Contains(joypad.Buttons, button) {
		return
	}

	if pressed {
		h.pressed <- button
	} else {
		h.released <- button
	}
}

// frame encodes a frame, and broadcasts it.
func (h *hub) frame(f display.Frame) error {
	h.mu.Lock()
	messages, err := h.encoder.encode(f.Screen, h.settings)
	h.mu.Unlock()
	if err != nil {
		return err
	}
	for _, msg := range messages {
		h.send(msg)
	}
	return nil
}

// send broadcasts msg, unless the hub has stopped.
func (h *hub) send(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}
