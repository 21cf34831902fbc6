package server

import (
	"github.com/ValentinKolb/rubin/lib/store"
	"github.com/ValentinKolb/rubin/rpc/common"
)

// IRPCServerAdapter is the interface for all RPC server adapters
// It is responsible for applying a decoded request to a store
type IRPCServerAdapter interface {
	// Handle applies a request to the store and returns the operation and payload of the response.
	// It is called while the caller holds exclusive access to the store.
	// Failures are reported as an common.OpError response, never as a panic.
	Handle(req *common.Message, s store.IStore) (op common.Operation, payload string)
}
