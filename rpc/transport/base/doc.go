// Package base provides the protocol independent part of the rubin transports.
// Protocol specific behaviour (how to listen, dial and tune a socket) is injected
// through the IServerConnector and IClientConnector interfaces, see the tcp and
// unix packages.
//
// Server side:
//
//	Listen binds the endpoint, Serve runs the accept loop and starts one goroutine
//	per accepted connection. Each connection serves exactly one request: the
//	goroutine reads once into a pooled buffer (ReadBufferSize, default 4096 bytes),
//	passes the bytes to the registered handler, writes the response and closes the
//	connection. Live connections are tracked in an xsync.MapOf so that Close can
//	drop them and report how many are active. There are no read or write deadlines,
//	a stalled client only blocks its own goroutine.
//
// Client side:
//
//	Send dials a fresh connection for every request, writes it, reads the response
//	until the server closes the connection (or the buffer is full) and closes the
//	connection. There is no pooling and no retry.
package base
