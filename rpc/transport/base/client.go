package base

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/transport"
)

// ErrNoResponse is returned if the server closed the connection without answering
var ErrNoResponse = errors.New("connection closed without response")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint (a zero timeout means no timeout)
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
//
// There is no connection pooling and no retry: every Send dials a new
// connection, writes the request, reads the response and closes the connection.
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig
	connected bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}
	if config.Transport.ReadBufferSize <= 0 {
		config.Transport.ReadBufferSize = common.DefaultBufferSize
	}

	t.config = config
	t.connected = true
	return nil
}

func (t *clientTransport) Send(req []byte) ([]byte, error) {
	if !t.connected {
		return nil, fmt.Errorf("%s transport is not connected", t.connector.GetName())
	}

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	conn, err := t.connector.Connect(t.config.Transport.Endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", t.config.Transport.Endpoint, err)
	}
	defer conn.Close()

	if err := t.connector.UpgradeConnection(conn, t.config); err != nil {
		return nil, fmt.Errorf("failed to upgrade connection to %s: %w", t.config.Transport.Endpoint, err)
	}

	if _, err := conn.Write(req); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return readResponse(conn, t.config.Transport.ReadBufferSize)
}

func (t *clientTransport) Close() error {
	t.connected = false
	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// readResponse reads one response: until the server closes the connection or the buffer is full
func readResponse(conn net.Conn, size int) ([]byte, error) {
	buf := make([]byte, size)
	n := 0
	for n < len(buf) {
		m, err := conn.Read(buf[n:])
		n += m
		if err == io.EOF {
			break
		}
		if err != nil {
			// the server resets connections whose request it did not read completely
			if n > 0 {
				break
			}
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
	}

	if n == 0 {
		return nil, ErrNoResponse
	}
	return buf[:n], nil
}
