// Package server is the TCP transport of the arbiter: it listens,
// handshakes the five clients, and moves protocol frames to and from
// their sockets. All game logic stays in pkg/daifugo; this package only
// owns the connections.
package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/decred/slog"
	"github.com/vctt94/daifugo/pkg/protocol"
)

// DefaultHandshakeTimeout is how long a fresh connection may stay silent
// before it is treated as a legacy client.
const DefaultHandshakeTimeout = 2500 * time.Millisecond

// Config describes the listening transport.
type Config struct {
	// Address is the listen address, e.g. ":42485". An empty port picks
	// a free one, useful in tests.
	Address string
	// NumPlayers is how many clients AcceptPlayers waits for.
	NumPlayers int
	// HandshakeTimeout bounds the profile read; zero means the default.
	HandshakeTimeout time.Duration
}

// Peer is one connected client.
type Peer struct {
	ID              int
	Name            string
	ProtocolVersion int

	conn net.Conn
}

// Server accepts the table's clients and serves framed I/O on their
// sockets. The engine drives it strictly serially, so no locking is
// needed around the peer table.
type Server struct {
	cfg   Config
	log   slog.Logger
	lis   net.Listener
	peers []*Peer
}

// New binds the listener. AcceptPlayers must be called before any frame
// I/O.
func New(cfg Config, log slog.Logger) (*Server, error) {
	if cfg.NumPlayers <= 0 {
		return nil, errors.New("server: NumPlayers must be positive")
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultHandshakeTimeout
	}
	lis, err := net.Listen("tcp", cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Address, err)
	}
	log.Infof("listening on %s", lis.Addr())
	return &Server{cfg: cfg, log: log, lis: lis}, nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// AcceptPlayers accepts and handshakes clients one at a time until the
// table is full. onConnect, if set, fires after each successful
// handshake.
func (s *Server) AcceptPlayers(onConnect func(*Peer)) error {
	for id := len(s.peers); id < s.cfg.NumPlayers; id++ {
		conn, err := s.lis.Accept()
		if err != nil {
			return fmt.Errorf("accept player %d: %w", id, err)
		}
		peer, err := s.handshake(id, conn)
		if err != nil {
			conn.Close()
			return fmt.Errorf("handshake player %d: %w", id, err)
		}
		s.peers = append(s.peers, peer)
		s.log.Infof("player %d connected: %s (protocol %d)", peer.ID, peer.Name, peer.ProtocolVersion)
		if onConnect != nil {
			onConnect(peer)
		}
	}
	return nil
}

// handshake reads the profile table and replies with the player id. A
// client that stays silent past the timeout is a legacy client; it gets
// a synthetic name and the old protocol version.
func (s *Server) handshake(id int, conn net.Conn) (*Peer, error) {
	peer := &Peer{
		ID:              id,
		Name:            fmt.Sprintf("Player%d", id),
		ProtocolVersion: protocol.LegacyProtocolVersion,
		conn:            conn,
	}

	if err := conn.SetReadDeadline(time.Now().Add(s.cfg.HandshakeTimeout)); err != nil {
		return nil, fmt.Errorf("set handshake deadline: %w", err)
	}
	t, err := protocol.ReadTable(conn)
	switch {
	case err == nil:
		version, name := protocol.ParseProfileTable(t)
		peer.ProtocolVersion = int(version)
		if name != "" {
			peer.Name = name
		}
	case errors.Is(err, os.ErrDeadlineExceeded):
		s.log.Debugf("player %d sent no profile, assuming legacy protocol", id)
	default:
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, fmt.Errorf("clear handshake deadline: %w", err)
	}

	if err := protocol.WriteUint32(conn, id); err != nil {
		return nil, fmt.Errorf("send player id: %w", err)
	}
	return peer, nil
}

// Peers returns the connected peers in id order.
func (s *Server) Peers() []*Peer {
	return s.peers
}

// SendTable writes one table frame to a player.
func (s *Server) SendTable(player int, t *protocol.Table) error {
	return protocol.WriteTable(s.peers[player].conn, t)
}

// RecvTable blocks until a full table frame arrives from a player.
func (s *Server) RecvTable(player int) (*protocol.Table, error) {
	return protocol.ReadTable(s.peers[player].conn)
}

// SendCode writes one response integer to a player.
func (s *Server) SendCode(player, code int) error {
	return protocol.WriteUint32(s.peers[player].conn, code)
}

// Close tears down every socket and the listener. Safe to call more than
// once.
func (s *Server) Close() error {
	var firstErr error
	for _, p := range s.peers {
		if p.conn == nil {
			continue
		}
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	if s.lis != nil {
		if err := s.lis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.lis = nil
	}
	return firstErr
}
