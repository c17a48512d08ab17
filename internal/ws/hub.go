// Package ws tracks connected viewer clients and fans generated-building
// patches out to them. The hub owns the patch sequence: callers hand it a
// payload and it wraps, numbers and encodes the envelope. Clients joining
// after a broadcast are caught up with the most recent patch so they render
// the current building immediately.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/nirholas/hyperscape-sub002/internal/protocol"
)

const writeTimeout = 3 * time.Second

type Hub struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	sequence uint64
	last     []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

// Add registers a client and replays the latest patch to it, if any.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	last := h.last
	h.mu.Unlock()
	if last != nil {
		h.write(conn, last)
	}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Sequence returns the number of patches broadcast so far.
func (h *Hub) Sequence() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sequence
}

// BroadcastPatch numbers, encodes and fans a patch out to every client,
// dropping connections whose write fails or times out. The encoded patch is
// retained for replay to clients that join later.
func (h *Hub) BroadcastPatch(patchType string, payload any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sequence++
	data, err := json.Marshal(protocol.PatchEnvelope{
		Sequence: h.sequence,
		Type:     patchType,
		Payload:  payload,
	})
	if err != nil {
		h.sequence--
		return fmt.Errorf("encode %s patch: %w", patchType, err)
	}
	h.last = data

	for conn := range h.clients {
		if !h.write(conn, data) {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	return nil
}

func (h *Hub) write(conn *websocket.Conn, data []byte) bool {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	err := conn.Write(ctx, websocket.MessageText, data)
	cancel()
	return err == nil
}
