package common

// --------------------------------------------------------------------------
// Message Error Type
// --------------------------------------------------------------------------

// ErrCode classifies why a request could not be decoded
type ErrCode uint8

const (
	ErrCInvalidFormat  ErrCode = iota + 1 // 1: The framing of the request is malformed.
	ErrCInvalidMessage                    // 2: The request is well framed but failed the arity check.
)

// Sentinel errors, to be used with errors.Is
var (
	ErrInvalidFormat  = &MessageError{Code: ErrCInvalidFormat}
	ErrInvalidMessage = &MessageError{Code: ErrCInvalidMessage}
)

// MessageError is returned when a request cannot be decoded.
// Msg is the human-readable reason which is sent back to the client.
type MessageError struct {
	Code ErrCode
	Msg  string
}

// NewMessageError creates a new MessageError with the given code and message.
func NewMessageError(code ErrCode, msg string) *MessageError {
	return &MessageError{
		Code: code,
		Msg:  msg,
	}
}

// Error implements the error interface.
func (e *MessageError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Code {
	case ErrCInvalidFormat:
		return "invalid format"
	case ErrCInvalidMessage:
		return "invalid message"
	default:
		return "unknown message error"
	}
}

// Is reports whether target is a MessageError with the same code.
func (e *MessageError) Is(target error) bool {
	t, ok := target.(*MessageError)
	return ok && t.Code == e.Code
}
