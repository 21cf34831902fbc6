package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("transport/rpc")

// acceptRetryDelay is the pause after a failed Accept before trying again
const acceptRetryDelay = 10 * time.Millisecond

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	listener   net.Listener
	bufferPool *sync.Pool

	conns      *xsync.MapOf[uint64, net.Conn] // live connections by id
	nextConnID atomic.Uint64
	accepted   *xsync.Counter
	handlers   sync.WaitGroup

	mu     sync.Mutex // orders handlers.Add against Close
	closed atomic.Bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport with the specified connector
func NewBaseServerTransport(connector IServerConnector) transport.IRPCServerTransport {
	return &serverTransport{
		connector: connector,
		conns:     xsync.NewMapOf[uint64, net.Conn](),
		accepted:  xsync.NewCounter(),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}
	if t.listener != nil {
		return fmt.Errorf("%s transport is already listening on %s", t.connector.GetName(), t.listener.Addr())
	}

	bufferSize := config.Transport.ReadBufferSize
	if bufferSize <= 0 {
		bufferSize = common.DefaultBufferSize
	}

	t.config = config
	t.bufferPool = &sync.Pool{
		New: func() interface{} {
			return make([]byte, bufferSize)
		},
	}

	// Create listener using the connector
	listener, err := t.connector.Listen(config)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	t.listener = listener

	Logger.Infof("Listening (%s) on %s with a %d byte read buffer",
		t.connector.GetName(), listener.Addr(), bufferSize)
	return nil
}

func (t *serverTransport) Serve() error {
	if t.listener == nil {
		return fmt.Errorf("%s transport is not listening", t.connector.GetName())
	}

	// Accept connections
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			if t.closed.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			Logger.Errorf("Accept error: %v", err)
			time.Sleep(acceptRetryDelay)
			continue
		}

		t.mu.Lock()
		if t.closed.Load() {
			t.mu.Unlock()
			_ = conn.Close()
			return nil
		}
		id := t.nextConnID.Add(1)
		t.conns.Store(id, conn)
		t.accepted.Inc()
		t.handlers.Add(1)
		t.mu.Unlock()

		// Handle the connection in a goroutine
		go t.handleConnection(id, conn)
	}
}

func (t *serverTransport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

func (t *serverTransport) ActiveConnections() int {
	return t.conns.Size()
}

func (t *serverTransport) AcceptedConnections() int64 {
	return t.accepted.Value()
}

func (t *serverTransport) Close() error {
	t.mu.Lock()
	if t.closed.Swap(true) {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	var err error
	if t.listener != nil {
		err = t.listener.Close()
	}

	// drop live connections, this unblocks handlers waiting for a slow client
	t.conns.Range(func(id uint64, conn net.Conn) bool {
		_ = conn.Close()
		return true
	})

	t.handlers.Wait()
	Logger.Infof("%s transport closed", t.connector.GetName())
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection serves exactly one request: read once, handle, write, close
func (t *serverTransport) handleConnection(id uint64, conn net.Conn) {
	defer func() {
		t.conns.Delete(id)
		_ = conn.Close()
		t.handlers.Done()
	}()

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		Logger.Warningf("Failed to upgrade connection from %s: %v", conn.RemoteAddr(), err)
	}

	// Get a buffer from the pool
	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	// A request is whatever arrives with the first read
	n, err := conn.Read(buf)
	if n == 0 {
		if err != nil && err != io.EOF && !t.closed.Load() {
			Logger.Errorf("Error reading from %s: %v", conn.RemoteAddr(), err)
		}
		return
	}

	start := time.Now()
	resp := t.handler(buf[:n])
	Logger.Debugf("Processed request from %s in %s", conn.RemoteAddr(), time.Since(start))

	if _, err := conn.Write(resp); err != nil {
		Logger.Errorf("Failed to write response to %s: %v", conn.RemoteAddr(), err)
	}
}
