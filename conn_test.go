package main

import "testing"

func TestConnTrackerEvictsOldestAtCapacity(t *testing.T) {
	tr := newConnTracker()
	var first *clientConn
	for i := 0; i < MaxUIConns; i++ {
		c := &clientConn{port: i}
		if i == 0 {
			first = c
		}
		if evicted := tr.add(c); evicted != nil {
			t.Fatalf("unexpected eviction before reaching capacity at i=%d", i)
		}
	}
	if tr.count() != MaxUIConns {
		t.Fatalf("expected %d connections, got %d", MaxUIConns, tr.count())
	}

	newest := &clientConn{port: 999}
	evicted := tr.add(newest)
	if evicted != first {
		t.Fatal("expected the oldest connection to be evicted on overflow")
	}
	if tr.count() != MaxUIConns {
		t.Fatalf("expected count to remain at capacity after eviction, got %d", tr.count())
	}
}

func TestConnTrackerRemoveSwapRemove(t *testing.T) {
	tr := newConnTracker()
	a := &clientConn{port: 1}
	b := &clientConn{port: 2}
	tr.add(a)
	tr.add(b)

	tr.remove(a)
	if tr.count() != 1 {
		t.Fatalf("expected 1 connection after remove, got %d", tr.count())
	}
	if tr.at(0) != b {
		t.Fatal("expected remaining connection to be b")
	}
}

func TestConnectionsTableReadsBackFields(t *testing.T) {
	tr := newConnTracker()
	tr.add(&clientConn{ip: "10.0.0.5", port: 4242})
	table := newConnectionsTable(tr)

	v, err := table.Select(0, "o_ip")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if v.S != "10.0.0.5" {
		t.Fatalf("expected o_ip 10.0.0.5, got %v", v.S)
	}

	v, err = table.Select(0, "o_port")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if v.I != 4242 {
		t.Fatalf("expected o_port 4242, got %v", v.I)
	}
}
