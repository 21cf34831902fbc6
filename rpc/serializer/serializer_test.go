package serializer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ValentinKolb/rubin/rpc/common"
)

// testMessages creates a set of valid requests covering every operation
func testMessages() []*common.Message {
	return []*common.Message{
		common.NewSetRequest("user:1000", "rebecca"),
		common.NewSetRequest("greeting", "hello big world"),
		common.NewGetRequest("user:1000"),
		common.NewRemoveRequest("user:1000"),
		common.NewClearRequest(),
		common.NewIncrRequest("counter"),
		common.NewDecrRequest("counter"),
		common.NewDumpRequest("/tmp/out.json"),
		common.NewNoopRequest(),
	}
}

// TestRequestRoundTrip tests that requests can be encoded and decoded correctly
func TestRequestRoundTrip(t *testing.T) {
	serializer := NewTextSerializer()

	for i, msg := range testMessages() {
		raw := serializer.EncodeRequest(msg)

		result, err := serializer.DecodeRequest(raw)
		if err != nil {
			t.Errorf("Failed to decode request %d (%q): %v", i, raw, err)
			continue
		}

		// normalize nil and empty argument lists before comparing
		if len(msg.Args) == 0 && len(result.Args) == 0 {
			result.Args = msg.Args
		}

		if !reflect.DeepEqual(msg, result) {
			t.Errorf("Request %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v", i, msg, result)
		}
	}
}

// TestEncodeRequest tests the exact wire format of requests
func TestEncodeRequest(t *testing.T) {
	serializer := NewTextSerializer()

	testCases := []struct {
		msg      *common.Message
		expected string
	}{
		{common.NewSetRequest("user:1000", "rebecca"), "SET::user:1000 rebecca"},
		{common.NewGetRequest("user:1000"), "GET::user:1000"},
		{common.NewRemoveRequest("k"), "RM::k"},
		{common.NewClearRequest(), "CLR::"},
		{common.NewIncrRequest("c"), "INCR::c"},
		{common.NewDecrRequest("c"), "DECR::c"},
		{common.NewDumpRequest("/tmp/x.json"), "DUMP::/tmp/x.json"},
		{common.NewNoopRequest(), "NOOP::"},
	}

	for _, tc := range testCases {
		if got := serializer.EncodeRequest(tc.msg); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}
}

// TestDecodeRequest tests decoding of hand written requests
func TestDecodeRequest(t *testing.T) {
	serializer := NewTextSerializer()

	testCases := []struct {
		name     string
		raw      string
		op       common.Operation
		key      string
		value    string
		expected error
	}{
		{name: "set", raw: "SET::arg1 arg2", op: common.OpSet, key: "arg1", value: "arg2"},
		{name: "set multi word value", raw: "SET::k a b c", op: common.OpSet, key: "k", value: "a b c"},
		{name: "set collapses spaces", raw: "SET::k  a   b", op: common.OpSet, key: "k", value: "a b"},
		{name: "lower case opcode", raw: "get::k", op: common.OpGet, key: "k"},
		{name: "value containing delimiter", raw: "SET::k a::b", op: common.OpSet, key: "k", value: "a::b"},
		{name: "clear", raw: "CLR::", op: common.OpClear},
		{name: "noop", raw: "NOOP::", op: common.OpNoop},
		{name: "no delimiter", raw: "BADOP arg", expected: common.ErrInvalidFormat},
		{name: "single colon", raw: "SGET:arguments blah", expected: common.ErrInvalidFormat},
		{name: "empty", raw: "", expected: common.ErrInvalidFormat},
		{name: "unknown opcode", raw: "FOO::bar", expected: common.ErrInvalidFormat},
		{name: "set without value", raw: "SET::onlykey", expected: common.ErrInvalidMessage},
		{name: "get without key", raw: "GET::", expected: common.ErrInvalidMessage},
		{name: "get with two keys", raw: "GET::a b", expected: common.ErrInvalidMessage},
		{name: "incr with two keys", raw: "INCR::a b", expected: common.ErrInvalidMessage},
		{name: "dump without path", raw: "DUMP::", expected: common.ErrInvalidMessage},
		{name: "clear with argument", raw: "CLR::noop", expected: common.ErrInvalidMessage},
		{name: "error opcode in request", raw: "ERR::boom", expected: common.ErrInvalidMessage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := serializer.DecodeRequest(tc.raw)

			if tc.expected != nil {
				if !errors.Is(err, tc.expected) {
					t.Fatalf("Expected error %v, got %v", tc.expected, err)
				}
				if msg != nil {
					t.Errorf("Expected no message on error, got %+v", msg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Did not expect error but got: %v", err)
			}
			if msg.Op != tc.op {
				t.Errorf("Operation mismatch: expected %s, got %s", tc.op, msg.Op)
			}
			if msg.Key() != tc.key {
				t.Errorf("Key mismatch: expected '%s', got '%s'", tc.key, msg.Key())
			}
			if msg.Value() != tc.value {
				t.Errorf("Value mismatch: expected '%s', got '%s'", tc.value, msg.Value())
			}
		})
	}
}

// TestDecodeRequestErrorMessages tests that the reasons sent to clients are readable
func TestDecodeRequestErrorMessages(t *testing.T) {
	serializer := NewTextSerializer()

	_, err := serializer.DecodeRequest("FOO::bar")
	if err == nil || !strings.Contains(err.Error(), "invalid operation: FOO") {
		t.Errorf("Expected invalid operation error, got %v", err)
	}

	_, err = serializer.DecodeRequest("SET::onlykey")
	if err == nil || !strings.Contains(err.Error(), "message failed validation") {
		t.Errorf("Expected validation error, got %v", err)
	}
}

// TestResponses tests encoding and decoding of responses
func TestResponses(t *testing.T) {
	serializer := NewTextSerializer()

	if got := serializer.EncodeResponse(common.OpSet, "OK"); got != "SET::OK\n" {
		t.Errorf("Expected %q, got %q", "SET::OK\n", got)
	}
	if got := serializer.EncodeResponse(common.OpGet, ""); got != "GET::\n" {
		t.Errorf("Expected %q, got %q", "GET::\n", got)
	}

	testCases := []struct {
		raw      string
		expected string
	}{
		{"SET::OK", "OK"},
		{"SET::OK\n", "OK"},
		{"GET::rebecca\n", "rebecca"},
		{"GET::\n", ""},
		{"GET:", ""},
		{"", ""},
		{"GET::a::b\n", "a::b"},
	}

	for _, tc := range testCases {
		if got := serializer.DecodeResponse(tc.raw); got != tc.expected {
			t.Errorf("DecodeResponse(%q): expected %q, got %q", tc.raw, tc.expected, got)
		}
	}

	// every operation survives a response round trip
	for _, op := range common.Operations {
		raw := serializer.EncodeResponse(op, "payload")
		if got := serializer.DecodeResponse(raw); got != "payload" {
			t.Errorf("Response payload for %s doesn't match after round trip: %q", op, got)
		}
	}
}
