// Package store provides the interface for string key-value storage and the
// pieces shared by its implementations.
//
// The package focuses on:
//   - A unified interface (IStore) for the in-memory and the persistent store
//   - A shared handle (Shared) serializing access to one store with a single lock
//   - Counters layered on top of string values (Add)
//   - The JSON snapshot format used for persistence and dumps
//   - Structured errors with return codes (Error, RetCode)
//
// Implementations:
//
//   - Local Store (lstore): a plain in-memory map.
//   - Persistent Store (pstore): a local store plus a storage directory holding a
//     JSON snapshot, flushed on every mutation or on demand.
//
// Absence of a key is never an error. Reading or removing a missing key yields the
// empty string, so callers can not distinguish a missing key from an empty value.
package store
