package serializer

import "github.com/ValentinKolb/rubin/rpc/common"

// IRPCSerializer is the interface for the wire codec used by server and client
type IRPCSerializer interface {
	// EncodeRequest encodes a Message into its request text. It never fails.
	EncodeRequest(msg *common.Message) string
	// DecodeRequest decodes a request text into a Message.
	// The returned error is a *common.MessageError (ErrInvalidFormat or ErrInvalidMessage).
	DecodeRequest(raw string) (*common.Message, error)
	// EncodeResponse encodes the response for an operation with the given payload
	EncodeResponse(op common.Operation, payload string) string
	// DecodeResponse extracts the payload of a response text.
	// It returns an empty string if the response is malformed, it never fails.
	DecodeResponse(raw string) string
}
