package client

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/ValentinKolb/rubin/rpc/serializer"
	"github.com/ValentinKolb/rubin/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var (
	Logger = logger.GetLogger("client")
)

// ServerError is returned when the server answers with an ERR response
type ServerError struct {
	Msg string
}

func (e *ServerError) Error() string {
	return "server error: " + e.Msg
}

// invokeRPCRequest is a helper function used by all client methods to send requests.
// It encodes the request, sends it and decodes the payload of the response.
// A request failing common.Message.Validate is returned as common.ErrInvalidMessage without being sent.
// An ERR response is returned as *ServerError, a response with an other opcode than the request as error.
func invokeRPCRequest(req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (string, error) {
	// invalid requests are not sent
	if err := req.Validate(); err != nil {
		return "", err
	}

	raw := serializer.EncodeRequest(req) + "\n"

	respBytes, err := transport.Send([]byte(raw))
	if err != nil {
		return "", err
	}
	resp := string(respBytes)

	op, ok := responseOperation(resp)
	switch {
	case !ok:
		return "", fmt.Errorf("malformed response: %q", resp)
	case op == common.OpError:
		return "", &ServerError{Msg: serializer.DecodeResponse(resp)}
	case op != req.Op:
		return "", fmt.Errorf("unexpected response operation: %s, expected %s", op, req.Op)
	}

	return serializer.DecodeResponse(resp), nil
}

// responseOperation returns the opcode of a raw response
func responseOperation(resp string) (common.Operation, bool) {
	code, _, found := strings.Cut(resp, common.Delimiter)
	if !found {
		return common.OpNoop, false
	}
	return common.ParseOperation(strings.TrimSpace(code))
}
