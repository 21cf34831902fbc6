package transport

import (
	"net"

	"github.com/ValentinKolb/rubin/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer once per connection with the bytes read
// from it. The returned response is written back before the connection is closed.
// The request slice is only valid during the call.
type ServerHandleFunc func(req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler is called for every accepted connection
	RegisterHandler(handler ServerHandleFunc)
	// Listen binds the endpoint of the configuration
	Listen(config common.ServerConfig) error
	// Serve accepts connections until Close is called, each connection is handled in its own goroutine.
	// It returns nil once the transport is closed.
	Serve() error
	// Addr returns the bound address (nil before Listen)
	Addr() net.Addr
	// ActiveConnections returns the number of connections currently being handled
	ActiveConnections() int
	// AcceptedConnections returns the number of connections accepted since Listen
	AcceptedConnections() int64
	// Close stops accepting, closes all live connections and waits for their handlers to return
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration
	Connect(config common.ClientConfig) error
	// Send opens a connection, sends a request and returns the response
	Send(req []byte) (resp []byte, err error)
	// Close releases the transport
	Close() error
}
