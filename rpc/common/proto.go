package common

import (
	"fmt"
	"strings"
)

// --------------------------------------------------------------------------
// Wire Constants
// --------------------------------------------------------------------------

const (
	// Delimiter separates the opcode from the arguments (requests) or the payload (responses)
	Delimiter = "::"
	// ArgSeparator separates the arguments of a request
	ArgSeparator = " "
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single decoded request.
// Which arguments are used depends on the operation (see Validate).
type Message struct {
	// Operation to perform
	Op Operation
	// Args holds the space separated arguments of the request in order
	Args []string
}

// Key returns the first argument of the message or an empty string if there is none.
// Used for: Set, Get, Remove, Incr, Decr (for Dump it is the target path)
func (m *Message) Key() string {
	if len(m.Args) == 0 {
		return ""
	}
	return m.Args[0]
}

// Value returns all arguments after the key joined by a single space.
// Used for: Set
func (m *Message) Value() string {
	if len(m.Args) < 2 {
		return ""
	}
	return strings.Join(m.Args[1:], ArgSeparator)
}

// Validate checks the argument count of the message against the arity of its operation.
//
//   - Set: at least two arguments (one key and one or more value tokens)
//   - Get, Remove, Incr, Decr, Dump: exactly one argument
//   - Clear, Noop: no arguments
//   - Error: never valid in a request
func (m *Message) Validate() error {
	n := len(m.Args)

	switch m.Op {
	case OpSet:
		if n < 2 {
			return NewMessageError(ErrCInvalidMessage,
				fmt.Sprintf("message failed validation: %s needs a key and a value, got %d argument(s)", m.Op, n))
		}
	case OpGet, OpRemove, OpIncr, OpDecr, OpDump:
		if n != 1 {
			return NewMessageError(ErrCInvalidMessage,
				fmt.Sprintf("message failed validation: %s needs exactly one argument, got %d", m.Op, n))
		}
	case OpClear, OpNoop:
		if n != 0 {
			return NewMessageError(ErrCInvalidMessage,
				fmt.Sprintf("message failed validation: %s takes no arguments, got %d", m.Op, n))
		}
	case OpError:
		return NewMessageError(ErrCInvalidMessage, "message failed validation: ERR is a response only opcode")
	default:
		return NewMessageError(ErrCInvalidMessage, fmt.Sprintf("message failed validation: unknown operation %d", m.Op))
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewSetRequest creates a new Set request. The value may contain spaces.
// The value is split into whitespace separated words, so tabs, newlines and runs
// of spaces become a single space on the server. An empty (or whitespace-only)
// value yields a request that fails Validate.
func NewSetRequest(key, value string) *Message {
	return &Message{
		Op:   OpSet,
		Args: append([]string{key}, strings.Fields(value)...),
	}
}

// NewGetRequest creates a new Get request
func NewGetRequest(key string) *Message {
	return &Message{Op: OpGet, Args: []string{key}}
}

// NewRemoveRequest creates a new Remove request
func NewRemoveRequest(key string) *Message {
	return &Message{Op: OpRemove, Args: []string{key}}
}

// NewClearRequest creates a new Clear request
func NewClearRequest() *Message {
	return &Message{Op: OpClear}
}

// NewIncrRequest creates a new Incr request
func NewIncrRequest(key string) *Message {
	return &Message{Op: OpIncr, Args: []string{key}}
}

// NewDecrRequest creates a new Decr request
func NewDecrRequest(key string) *Message {
	return &Message{Op: OpDecr, Args: []string{key}}
}

// NewDumpRequest creates a new Dump request writing the store to path (on the server)
func NewDumpRequest(path string) *Message {
	return &Message{Op: OpDump, Args: []string{path}}
}

// NewNoopRequest creates a new Noop request
func NewNoopRequest() *Message {
	return &Message{Op: OpNoop}
}

// --------------------------------------------------------------------------
// Operation
// --------------------------------------------------------------------------

// Operation is the closed set of operations understood by the protocol
type Operation uint8

const (
	OpNoop   Operation = iota // No operation
	OpSet                     // Insert or update a string
	OpGet                     // Retrieve a string
	OpRemove                  // Remove a string
	OpClear                   // Remove all strings
	OpIncr                    // Increment a counter
	OpDecr                    // Decrement a counter
	OpDump                    // Write the store to a file on the server
	OpError                   // Error response
)

// Operations lists every operation in declaration order
var Operations = []Operation{OpNoop, OpSet, OpGet, OpRemove, OpClear, OpIncr, OpDecr, OpDump, OpError}

// String returns the opcode used on the wire
func (o Operation) String() string {
	switch o {
	case OpNoop:
		return "NOOP"
	case OpSet:
		return "SET"
	case OpGet:
		return "GET"
	case OpRemove:
		return "RM"
	case OpClear:
		return "CLR"
	case OpIncr:
		return "INCR"
	case OpDecr:
		return "DECR"
	case OpDump:
		return "DUMP"
	case OpError:
		return "ERR"
	default:
		return fmt.Sprintf("Operation(%d)", uint8(o))
	}
}

// ParseOperation maps an opcode to its Operation. Matching is case-insensitive.
// The boolean return value is false if the opcode is unknown.
func ParseOperation(code string) (Operation, bool) {
	switch strings.ToUpper(code) {
	case "NOOP":
		return OpNoop, true
	case "SET":
		return OpSet, true
	case "GET":
		return OpGet, true
	case "RM":
		return OpRemove, true
	case "CLR":
		return OpClear, true
	case "INCR":
		return OpIncr, true
	case "DECR":
		return OpDecr, true
	case "DUMP":
		return OpDump, true
	case "ERR":
		return OpError, true
	default:
		return OpNoop, false
	}
}
