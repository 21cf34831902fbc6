package serializer

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/rubin/rpc/common"
)

// NewTextSerializer creates a new serializer for the line based text protocol
//
//	request:  <OPCODE>::<arg1> <arg2> ...
//	response: <OPCODE>::<payload>\n
func NewTextSerializer() IRPCSerializer {
	return &textSerializerImpl{}
}

// textSerializerImpl implements the IRPCSerializer interface for the text protocol
type textSerializerImpl struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IRPCSerializer)
// --------------------------------------------------------------------------

func (t *textSerializerImpl) EncodeRequest(msg *common.Message) string {
	return msg.Op.String() + common.Delimiter + strings.Join(msg.Args, common.ArgSeparator)
}

func (t *textSerializerImpl) DecodeRequest(raw string) (*common.Message, error) {
	// split only once, everything after the first delimiter are arguments
	parts := strings.SplitN(raw, common.Delimiter, 2)
	if len(parts) < 2 {
		return nil, common.NewMessageError(common.ErrCInvalidFormat,
			fmt.Sprintf("invalid format: expected <OPCODE>%s<ARGS>", common.Delimiter))
	}

	op, ok := common.ParseOperation(strings.TrimSpace(parts[0]))
	if !ok {
		return nil, common.NewMessageError(common.ErrCInvalidFormat,
			fmt.Sprintf("invalid operation: %s", parts[0]))
	}

	msg := &common.Message{
		Op:   op,
		Args: splitArgs(parts[1]),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

func (t *textSerializerImpl) EncodeResponse(op common.Operation, payload string) string {
	return op.String() + common.Delimiter + payload + "\n"
}

func (t *textSerializerImpl) DecodeResponse(raw string) string {
	parts := strings.SplitN(raw, common.Delimiter, 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// splitArgs splits the argument section on spaces, empty tokens are dropped
func splitArgs(s string) []string {
	args := make([]string, 0, 2)
	for _, arg := range strings.Split(s, common.ArgSeparator) {
		if arg != "" {
			args = append(args, arg)
		}
	}
	return args
}
