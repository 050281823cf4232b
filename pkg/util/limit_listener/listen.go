// Package limit_listener caps the number of open connections of a
// net.Listener. When the cap is reached and no slot frees up in time, the
// connection that has gone longest without a read is closed.
package limit_listener

import (
	"net"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

const DefaultWait = time.Second

// LimitListener returns a Listener that accepts at most n simultaneous
// connections from l.
func LimitListener(l net.Listener, n int) net.Listener {
	return Listen(l, n, DefaultWait)
}

// Listen is LimitListener with a custom wait before an idle connection is
// evicted.
func Listen(l net.Listener, n int, wait time.Duration) net.Listener {
	return &limitListener{
		Listener: l,
		slots:    make(chan struct{}, n),
		done:     make(chan struct{}),
		wait:     wait,
		conns:    orderedmap.NewOrderedMap[uint64, *limitConn](),
	}
}

type limitListener struct {
	net.Listener
	slots     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wait      time.Duration

	mu    sync.Mutex
	next  uint64
	conns *orderedmap.OrderedMap[uint64, *limitConn] // least recently read first
}

func (l *limitListener) acquire() bool {
	for {
		t := time.NewTimer(l.wait)
		select {
		case <-l.done:
			t.Stop()
			return false
		case l.slots <- struct{}{}:
			t.Stop()
			return true
		case <-t.C:
			l.evict()
		}
	}
}

func (l *limitListener) evict() {
	l.mu.Lock()
	el := l.conns.Front()
	l.mu.Unlock()
	if el != nil {
		_ = el.Value.Close()
	}
}

func (l *limitListener) touch(c *limitConn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.conns.Get(c.id); ok {
		l.conns.Delete(c.id)
		l.conns.Set(c.id, c)
	}
}

func (l *limitListener) forget(c *limitConn) {
	l.mu.Lock()
	l.conns.Delete(c.id)
	l.mu.Unlock()
	<-l.slots
}

func (l *limitListener) Accept() (net.Conn, error) {
	if !l.acquire() {
		return nil, net.ErrClosed
	}
	c, err := l.Listener.Accept()
	if err != nil {
		<-l.slots
		return nil, err
	}
	l.mu.Lock()
	lc := &limitConn{Conn: c, id: l.next, l: l}
	l.next++
	l.conns.Set(lc.id, lc)
	l.mu.Unlock()
	return lc, nil
}

func (l *limitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.done) })
	return err
}

// Open returns the number of tracked connections.
func (l *limitListener) Open() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.conns.Len()
}

type limitConn struct {
	net.Conn
	id        uint64
	l         *limitListener
	closeOnce sync.Once
}

func (c *limitConn) Read(b []byte) (int, error) {
	c.l.touch(c)
	return c.Conn.Read(b)
}

func (c *limitConn) Close() error {
	err := c.Conn.Close()
	c.closeOnce.Do(func() { c.l.forget(c) })
	return err
}
