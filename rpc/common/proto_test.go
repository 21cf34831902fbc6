package common

import (
	"errors"
	"testing"
)

func TestOperationRoundTrip(t *testing.T) {
	for _, op := range Operations {
		parsed, ok := ParseOperation(op.String())
		if !ok {
			t.Errorf("Failed to parse opcode %s", op)
			continue
		}
		if parsed != op {
			t.Errorf("Operation mismatch: expected %s, got %s", op, parsed)
		}
	}
}

func TestParseOperation(t *testing.T) {
	testCases := map[string]Operation{
		"SET":  OpSet,
		"set":  OpSet,
		"GET":  OpGet,
		"RM":   OpRemove,
		"CLR":  OpClear,
		"INCR": OpIncr,
		"Decr": OpDecr,
		"DUMP": OpDump,
		"NOOP": OpNoop,
		"ERR":  OpError,
	}
	for code, expected := range testCases {
		op, ok := ParseOperation(code)
		if !ok || op != expected {
			t.Errorf("ParseOperation(%q) = %s, %v; expected %s", code, op, ok, expected)
		}
	}

	for _, code := range []string{"", "SOMETHING", "SETX", "DEL"} {
		if _, ok := ParseOperation(code); ok {
			t.Errorf("Expected %q to be unknown", code)
		}
	}
}

func TestMessageValidate(t *testing.T) {
	testCases := []struct {
		name  string
		msg   Message
		valid bool
	}{
		{"set key value", Message{Op: OpSet, Args: []string{"k", "v"}}, true},
		{"set key multi value", Message{Op: OpSet, Args: []string{"k", "v1", "v2"}}, true},
		{"set key only", Message{Op: OpSet, Args: []string{"k"}}, false},
		{"get key", Message{Op: OpGet, Args: []string{"k"}}, true},
		{"get no key", Message{Op: OpGet}, false},
		{"get two keys", Message{Op: OpGet, Args: []string{"a", "b"}}, false},
		{"remove key", Message{Op: OpRemove, Args: []string{"k"}}, true},
		{"incr key", Message{Op: OpIncr, Args: []string{"k"}}, true},
		{"decr no key", Message{Op: OpDecr}, false},
		{"dump path", Message{Op: OpDump, Args: []string{"/tmp/x"}}, true},
		{"clear", Message{Op: OpClear}, true},
		{"clear with args", Message{Op: OpClear, Args: []string{"x"}}, false},
		{"noop", Message{Op: OpNoop}, true},
		{"error", Message{Op: OpError}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Expected message to be valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidMessage) {
				t.Errorf("Expected ErrInvalidMessage, got %v", err)
			}
		})
	}
}

func TestMessageKeyValue(t *testing.T) {
	msg := NewSetRequest("user:1000", "rebecca  with spaces")
	if msg.Key() != "user:1000" {
		t.Errorf("Expected key user:1000, got %s", msg.Key())
	}
	if msg.Value() != "rebecca with spaces" {
		t.Errorf("Expected value 'rebecca with spaces', got '%s'", msg.Value())
	}

	empty := NewClearRequest()
	if empty.Key() != "" || empty.Value() != "" {
		t.Errorf("Expected empty key and value for clear request")
	}
}

func TestMessageErrorIs(t *testing.T) {
	err := NewMessageError(ErrCInvalidFormat, "invalid operation: FOO")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Expected error to match ErrInvalidFormat")
	}
	if errors.Is(err, ErrInvalidMessage) {
		t.Errorf("Did not expect error to match ErrInvalidMessage")
	}
	if err.Error() != "invalid operation: FOO" {
		t.Errorf("Unexpected error text: %s", err.Error())
	}
}
