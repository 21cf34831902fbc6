// Package tcp implements the TCP connectors for the base transport.
// The server connector applies the TCPConf options (no delay, keep alive, linger)
// and the socket write buffer to every accepted connection, the client connector
// dials with the configured timeout.
package tcp
