// Package unix implements the Unix domain socket connectors for the base transport.
// The endpoint is the path of the socket file. A stale file at that path is removed
// before listening.
package unix
