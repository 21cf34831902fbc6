package client

import (
	"strconv"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/serializer"
	"github.com/ValentinKolb/rubin/rpc/transport"
)

// RPCClient sends requests to a rubin server. Every call uses its own connection.
type RPCClient struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// NewRPCClient creates a new client
// The function takes a config, a transport and a serializer as parameters
//
// Usage:
//
//	c, err := client.NewRPCClient(
//		common.NewClientConfig("localhost", common.DefaultPort),
//		tcp.NewTCPClientTransport(),
//		serializer.NewTextSerializer(),
//	)
//	_, err = c.InsertString("user:1000", "rebecca")
//	value, err := c.GetString("user:1000")
func NewRPCClient(
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (*RPCClient, error) {
	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &RPCClient{
		config:     config,
		transport:  transport,
		serializer: serializer,
	}, nil
}

// Request sends a raw request and returns the raw response (including the opcode)
func (c *RPCClient) Request(raw string) (string, error) {
	resp, err := c.transport.Send([]byte(raw))
	if err != nil {
		return "", err
	}
	Logger.Debugf("%q -> %q", raw, resp)
	return string(resp), nil
}

// InsertString sets key to value and returns the payload of the response ("OK").
// Whitespace inside value is normalized to single spaces. An empty value is
// rejected with common.ErrInvalidMessage.
func (c *RPCClient) InsertString(key, value string) (string, error) {
	return invokeRPCRequest(common.NewSetRequest(key, value), c.transport, c.serializer)
}

// GetString returns the value of key or an empty string if it does not exist
func (c *RPCClient) GetString(key string) (string, error) {
	return invokeRPCRequest(common.NewGetRequest(key), c.transport, c.serializer)
}

// RemoveString removes key and returns its prior value
func (c *RPCClient) RemoveString(key string) (string, error) {
	return invokeRPCRequest(common.NewRemoveRequest(key), c.transport, c.serializer)
}

// ClearStrings removes all keys
func (c *RPCClient) ClearStrings() (string, error) {
	return invokeRPCRequest(common.NewClearRequest(), c.transport, c.serializer)
}

// Incr increments the counter at key and returns the new value
func (c *RPCClient) Incr(key string) (int64, error) {
	return c.counter(common.NewIncrRequest(key))
}

// Decr decrements the counter at key and returns the new value
func (c *RPCClient) Decr(key string) (int64, error) {
	return c.counter(common.NewDecrRequest(key))
}

// DumpStore makes the server write its store to path (a path on the server)
func (c *RPCClient) DumpStore(path string) (string, error) {
	return invokeRPCRequest(common.NewDumpRequest(path), c.transport, c.serializer)
}

// Noop sends a request that does nothing, useful to check that the server is up
func (c *RPCClient) Noop() (string, error) {
	return invokeRPCRequest(common.NewNoopRequest(), c.transport, c.serializer)
}

// Close releases the transport
func (c *RPCClient) Close() error {
	return c.transport.Close()
}

func (c *RPCClient) counter(req *common.Message) (int64, error) {
	payload, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(payload, 10, 64)
}
