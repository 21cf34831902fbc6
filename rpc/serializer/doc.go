// Package serializer provides the wire codec of the rubin line protocol.
// It defines a common interface (IRPCSerializer) so that the server and the
// client get the codec injected, the same way they get their transport.
//
// Key Components:
//
//   - IRPCSerializer: Interface for encoding and decoding requests and responses.
//
//   - textSerializerImpl: The text protocol. A request is an opcode and its space
//     separated arguments joined by "::", a response is an opcode and a payload
//     joined by "::" and terminated by a newline.
//
// Decoding a request splits on the first delimiter only, maps the opcode
// (case-insensitive) and checks the arity of the operation. Unknown opcodes and
// missing delimiters are reported as common.ErrInvalidFormat, arity violations
// as common.ErrInvalidMessage. Decoding a response never fails: a malformed
// response yields an empty payload.
//
// Thread Safety:
//
//	The serializer is stateless and safe for concurrent use.
package serializer
