package common

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

const (
	// DefaultPort is the port the server listens on if none is configured
	DefaultPort = 9876
	// DefaultBufferSize is the size of the single read buffer used per request/response
	DefaultBufferSize = 4096
)

// --------------------------------------------------------------------------
// Socket configuration structs (shared by server and client)
// --------------------------------------------------------------------------

// SocketConf holds the buffer settings for stream sockets
type SocketConf struct {
	// ReadBufferSize is the size of the buffer a request (server) or response (client) is read into.
	// Anything beyond it is cut off.
	ReadBufferSize int
	// WriteBufferSize is the kernel socket write buffer (0 = system default)
	WriteBufferSize int
}

// TCPConf holds TCP specific socket options
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

type ServerTransportConfig struct {
	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters of a server
type ServerConfig struct {
	// Endpoint is the address the transport listens on (host:port for tcp, a path for unix)
	Endpoint string

	// Transport holds the socket options
	Transport ServerTransportConfig

	// DataDir is the storage directory of the persistent store.
	// An empty DataDir means the store lives in memory only.
	DataDir string
	// WriteOnUpdate flushes the persistent store after every mutation (ignored without DataDir)
	WriteOnUpdate bool

	// MetricsEndpoint is the address of the http endpoint serving /metrics (empty = disabled)
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// NewServerConfig returns a configuration listening on address:port with default settings
func NewServerConfig(address string, port int) ServerConfig {
	return ServerConfig{
		Endpoint: JoinHostPort(address, port),
		Transport: ServerTransportConfig{
			SocketConf: SocketConf{ReadBufferSize: DefaultBufferSize},
			TCPConf:    TCPConf{TCPNoDelay: true, TCPLingerSec: -1},
		},
		LogLevel: "info",
	}
}

// IsPersistent checks if the configuration asks for a persistent store
func (c *ServerConfig) IsPersistent() bool {
	return c.DataDir != ""
}

// Validate checks the configuration for values that can not work
func (c *ServerConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.Transport.ReadBufferSize <= 0 {
		return fmt.Errorf("read buffer size must be positive, got %d", c.Transport.ReadBufferSize)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))
	addField("TCP No Delay", strconv.FormatBool(c.Transport.TCPNoDelay))

	// Storage
	addSection("Storage")
	if c.IsPersistent() {
		addField("Data Directory", c.DataDir)
		addField("Write On Update", strconv.FormatBool(c.WriteOnUpdate))
	} else {
		addField("Mode", "in-memory only")
	}

	// Logging and metrics
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientTransportConfig struct {
	// Endpoint is the address of the server
	Endpoint string
	SocketConf
	TCPConf
}

type ClientConfig struct {
	// TimeoutSecond bounds dialing the server (0 = no timeout)
	TimeoutSecond int
	Transport     ClientTransportConfig
}

// NewClientConfig returns a configuration for a server at address:port with default settings
func NewClientConfig(address string, port int) ClientConfig {
	return ClientConfig{
		Transport: ClientTransportConfig{
			Endpoint:   JoinHostPort(address, port),
			SocketConf: SocketConf{ReadBufferSize: DefaultBufferSize},
			TCPConf:    TCPConf{TCPNoDelay: true, TCPLingerSec: -1},
		},
	}
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Transport.ReadBufferSize))

	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// JoinHostPort combines an address and a port to an endpoint
func JoinHostPort(address string, port int) string {
	return net.JoinHostPort(address, strconv.Itoa(port))
}
