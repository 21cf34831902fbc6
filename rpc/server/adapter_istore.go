package server

import (
	"github.com/ValentinKolb/rubin/lib/store"
	"github.com/ValentinKolb/rubin/rpc/common"
	"github.com/spf13/afero"
)

const (
	payloadOK   = "OK"
	payloadNoop = "nothing to do"
)

// NewIStoreServerAdapter creates the adapter for the string store.
// Dump requests write their snapshot to fs.
func NewIStoreServerAdapter(fs afero.Fs) IRPCServerAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &iStoreServerAdapterImpl{fs: fs}
}

type iStoreServerAdapterImpl struct {
	fs afero.Fs
}

func (adapter *iStoreServerAdapterImpl) Handle(req *common.Message, s store.IStore) (common.Operation, string) {
	// Check for nil store
	if s == nil {
		return common.OpError, "handler: store is nil"
	}

	switch req.Op {
	case common.OpSet:
		if _, err := s.Insert(req.Key(), req.Value()); err != nil {
			return common.OpError, err.Error()
		}
		return common.OpSet, payloadOK
	case common.OpGet:
		return result(common.OpGet)(s.Get(req.Key()))
	case common.OpRemove:
		return result(common.OpRemove)(s.Remove(req.Key()))
	case common.OpClear:
		if err := s.Clear(); err != nil {
			return common.OpError, err.Error()
		}
		return common.OpClear, payloadOK
	case common.OpIncr:
		return result(common.OpIncr)(store.Add(s, req.Key(), 1))
	case common.OpDecr:
		return result(common.OpDecr)(store.Add(s, req.Key(), -1))
	case common.OpDump:
		if err := store.WriteSnapshot(adapter.fs, req.Key(), s.Strings()); err != nil {
			return common.OpError, err.Error()
		}
		return common.OpDump, payloadOK
	case common.OpNoop:
		return common.OpNoop, payloadNoop
	default:
		return common.OpError, "unsupported operation: " + req.Op.String()
	}
}

// result turns the (value, error) result of a store call into a response
func result(op common.Operation) func(string, error) (common.Operation, string) {
	return func(value string, err error) (common.Operation, string) {
		if err != nil {
			return common.OpError, err.Error()
		}
		return op, value
	}
}
