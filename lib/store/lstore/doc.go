// Package lstore implements the local, in-memory string store behind the
// store.IStore interface. Data lives in a plain map and is lost when the
// process exits unless the store is wrapped by the pstore package.
//
// Besides the store.IStore methods the store offers error-free variants
// (InsertString, GetString, RemoveString, ClearStrings) for callers that hold
// the concrete type, since none of the in-memory operations can fail.
//
// Thread Safety:
//
//	The store does no locking of its own. The server hands a single instance
//	to all connections through store.Shared, which serializes every access.
//
// Usage Example:
//
//	s := lstore.NewLocalStore()
//	s.InsertString("user:1000", "rebecca")
//	s.GetString("user:1000")   // "rebecca"
//	s.RemoveString("user:1000") // "rebecca"
//	s.GetString("user:1000")   // ""
package lstore
