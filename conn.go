// conn.go - connection tracking and the recovered "connections" table
//
// Restores the ctm/cdur/o_ip/o_port/nbytin/nbytout columns from
// _examples/original_source/sqlizer-daemon/main.c's UI connection struct
// and its compute_cdur() pre-read callback (SPEC_FULL.md "Recovered
// Features"). The doubly-linked list the original used is replaced with a
// plain slice and swap-remove, per spec.md Design Notes' own recommendation.
//
// License: GPLv3 or later

package main

import (
	"net"
	"sync"
	"time"
)

// clientConn tracks one open control-plane connection for diagnostics and
// for the eviction policy of spec.md 5/6.
type clientConn struct {
	conn    net.Conn
	ip      string
	port    int
	connAt  time.Time
	nbytIn  int64
	nbytOut int64
}

// connTracker is the event loop's fixed-capacity connection list. Each
// connection's goroutine (server.go handleConn) adds and removes its own
// entry, and the connections table reads entries from the engine's render
// loop goroutine, so every method takes the mutex.
type connTracker struct {
	mu    sync.Mutex
	conns []*clientConn
}

func newConnTracker() *connTracker {
	return &connTracker{}
}

// add appends a new connection, evicting the oldest (earliest connAt; the
// first such entry on a tie) if the tracker is already at MaxUIConns,
// matching spec.md 6's eviction rule. Slice order is not connection order
// once remove has swapped entries, so the oldest is found by connAt.
func (t *connTracker) add(c *clientConn) (evicted *clientConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.conns) >= MaxUIConns {
		oldest := 0
		for i, existing := range t.conns {
			if existing.connAt.Before(t.conns[oldest].connAt) {
				oldest = i
			}
		}
		evicted = t.conns[oldest]
		last := len(t.conns) - 1
		t.conns[oldest] = t.conns[last]
		t.conns = t.conns[:last]
	}
	t.conns = append(t.conns, c)
	return evicted
}

// remove drops c from the tracker via swap-remove.
func (t *connTracker) remove(c *clientConn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, existing := range t.conns {
		if existing == c {
			last := len(t.conns) - 1
			t.conns[i] = t.conns[last]
			t.conns = t.conns[:last]
			return
		}
	}
}

func (t *connTracker) at(i int) *clientConn {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.conns) {
		return nil
	}
	return t.conns[i]
}

func (t *connTracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

// newConnectionsTable builds the read-only diagnostic table restored from
// the original's UI struct. cdur is computed by a pre-read callback exactly
// as compute_cdur() did: elapsed time is derived at read time, never
// maintained by a background updater.
func newConnectionsTable(t *connTracker) *Table {
	tbl := newTable("connections", MaxUIConns)
	tbl.add(Column{Name: "o_ip", Type: ColStr, ReadOnly: true, Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return StrValue(""), nil
		}
		return StrValue(c.ip), nil
	}})
	tbl.add(Column{Name: "o_port", Type: ColInt, ReadOnly: true, Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return IntValue(0), nil
		}
		return IntValue(int32(c.port)), nil
	}})
	tbl.add(Column{Name: "ctm", Type: ColInt, ReadOnly: true, Help: "connection start, unix seconds", Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return IntValue(0), nil
		}
		return IntValue(int32(c.connAt.Unix())), nil
	}})
	tbl.add(Column{Name: "cdur", Type: ColInt, ReadOnly: true, Help: "seconds since connect, recomputed on read", Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return IntValue(0), nil
		}
		return IntValue(int32(time.Since(c.connAt).Seconds())), nil
	}})
	tbl.add(Column{Name: "nbytin", Type: ColInt, ReadOnly: true, Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return IntValue(0), nil
		}
		return IntValue(int32(c.nbytIn)), nil
	}})
	tbl.add(Column{Name: "nbytout", Type: ColInt, ReadOnly: true, Get: func(row int) (Value, error) {
		c := t.at(row)
		if c == nil {
			return IntValue(0), nil
		}
		return IntValue(int32(c.nbytOut)), nil
	}})
	return tbl
}
