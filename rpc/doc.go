// Package rpc contains the network side of rubin.
//
// The package is organized into several subpackages:
//
//   - common: the operation vocabulary, the Message type, decode errors,
//     configuration structures and logging.
//
//   - serializer: the text codec (<OPCODE>::<args> requests, <OPCODE>::<payload> responses).
//
//   - transport: connection handling with tcp and unix socket implementations.
//     One request is served per connection.
//
//   - server: owns the store, decodes requests, applies them under the store lock
//     and encodes the responses.
//
//   - client: sends requests to a server, one connection per call.
package rpc
