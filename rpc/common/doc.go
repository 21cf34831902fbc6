// Package common provides the data structures shared by the rubin server and client.
//
// The package focuses on:
//   - The operation vocabulary of the line protocol (Operation) and its opcodes
//   - The decoded request (Message) with its arity rules and factory functions
//   - The error type returned for undecodable requests (MessageError)
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with Dragonboat's logger package
//
// Operations and their opcodes:
//
//	OpSet    SET   key value...   insert or update (the value may contain spaces)
//	OpGet    GET   key            retrieve, empty payload if absent
//	OpRemove RM    key            remove, returns the removed value
//	OpClear  CLR                  remove every key
//	OpIncr   INCR  key            add one to a counter, returns the new value
//	OpDecr   DECR  key            subtract one from a counter, returns the new value
//	OpDump   DUMP  path           write a JSON snapshot to path on the server
//	OpNoop   NOOP                 do nothing
//	OpError  ERR                  response only
package common
