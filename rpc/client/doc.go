// Package client implements the rubin client.
//
// RPCClient opens a fresh connection per call, writes one request, reads the
// response and closes the connection. There is no pooling and no retry.
//
// The convenience methods build the request with the common factories, encode it
// with the serializer and return the decoded payload. An ERR response is returned
// as *ServerError. Request sends raw text and returns the raw response.
//
//	c, _ := client.NewRPCClient(
//		common.NewClientConfig("localhost", common.DefaultPort),
//		tcp.NewTCPClientTransport(),
//		serializer.NewTextSerializer(),
//	)
//	c.InsertString("user:1000", "rebecca")
//	name, _ := c.GetString("user:1000") // "rebecca"
//	n, _ := c.Incr("visits")            // 1
package client
