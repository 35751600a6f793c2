// Package agent implements the reference client: the connection loop,
// the table-level hand analysis, and the shipped strategy.
package agent

import (
	"fmt"
	"net"

	"github.com/vctt94/daifugo/pkg/protocol"
)

// Conn is the client side of an arbiter connection.
type Conn struct {
	conn net.Conn
}

// Dial connects to the arbiter at addr.
func Dial(addr string) (*Conn, error) {
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial arbiter %s: %w", addr, err)
	}
	return &Conn{conn: c}, nil
}

// NewConn wraps an existing connection, for in-process tests.
func NewConn(c net.Conn) *Conn {
	return &Conn{conn: c}
}

// Handshake sends the profile table and returns the assigned player id.
func (c *Conn) Handshake(name string) (int, error) {
	profile := protocol.CreateProfileTable(protocol.ProtocolVersion, name)
	if err := protocol.WriteTable(c.conn, profile); err != nil {
		return 0, fmt.Errorf("send profile: %w", err)
	}
	id, err := protocol.ReadUint32(c.conn)
	if err != nil {
		return 0, fmt.Errorf("read player id: %w", err)
	}
	return int(id), nil
}

// SendTable writes one table frame.
func (c *Conn) SendTable(t *protocol.Table) error {
	return protocol.WriteTable(c.conn, t)
}

// RecvTable blocks until a full table frame arrives.
func (c *Conn) RecvTable() (*protocol.Table, error) {
	return protocol.ReadTable(c.conn)
}

// RecvCode blocks until a response integer arrives.
func (c *Conn) RecvCode() (int, error) {
	v, err := protocol.ReadUint32(c.conn)
	return int(v), err
}

// Close shuts the socket.
func (c *Conn) Close() error {
	return c.conn.Close()
}
