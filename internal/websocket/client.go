package websocket

import (
	"context"
	"slices"
	"sync"
	"time"

	ws "github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// Client is one websocket connection and the entities it listens to.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte

	mu       sync.RWMutex
	entities []string // empty means all
}

func NewClient(hub *Hub, conn *ws.Conn, entities []string) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		entities: entities,
	}
}

// Wants reports whether the client is subscribed to entity.
func (c *Client) Wants(entity string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities) == 0 || slices.Contains(c.entities, entity)
}

func (c *Client) subscribe(entities []string) {
	c.mu.Lock()
	c.entities = entities
	c.mu.Unlock()
}

// Run registers the client and pumps messages until the connection closes.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)
	c.readPump(ctx)
}

// subscription is the only message clients send: it replaces the set of
// entities the client listens to.
type subscription struct {
	Entities string `json:"entities"`
}

// readPump applies subscription changes. A malformed message closes the
// connection.
func (c *Client) readPump(ctx context.Context) {
	for {
		var sub subscription
		if err := wsjson.Read(ctx, c.conn, &sub); err != nil {
			return
		}
		entities, err := ParseEntities(sub.Entities)
		if err != nil {
			c.conn.Close(ws.StatusPolicyViolation, err.Error())
			return
		}
		c.subscribe(entities)
	}
}

// writePump writes queued messages and pings the peer so that dead
// connections are noticed.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(ctx, msg); err != nil {
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
