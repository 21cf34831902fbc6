// Package transport defines the interfaces between the rubin server/client and
// the network. Implementations live in the subpackages:
//
//   - base: protocol independent accept loop and request sender
//   - tcp: TCP sockets (the default)
//   - unix: Unix domain sockets
package transport
