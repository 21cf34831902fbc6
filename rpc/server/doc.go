// Package server implements the rubin RPC server.
//
// The server owns exactly one store for the process lifetime: an lstore.Store when
// no data directory is configured, a pstore.Store (loaded from the snapshot in the
// data directory) otherwise. The store is wrapped in a store.Shared handle and every
// request takes its exclusive lock, including reads.
//
// Per connection the transport calls the registered handler once. The handler
//
//  1. decodes the bytes as text (invalid UTF-8 is replaced) and trims trailing whitespace,
//  2. decodes the request with the serializer and answers ERR::<reason> on failure
//     without touching the store,
//  3. applies the request through the IRPCServerAdapter while holding the store lock
//     (a write-on-update flush happens inside the lock),
//  4. encodes the response after the lock has been released.
//
// Responses per operation:
//
//	SET::k v    -> SET::OK
//	GET::k      -> GET::<value or empty>
//	RM::k       -> RM::<prior value or empty>
//	CLR::       -> CLR::OK
//	INCR::k     -> INCR::<new value>  (absent or non numeric counts as 0)
//	DECR::k     -> DECR::<new value>
//	DUMP::path  -> DUMP::OK or ERR::<reason>
//	NOOP::      -> NOOP::nothing to do
//
// When a MetricsEndpoint is configured, request counters, a latency histogram and
// connection gauges are served in the prometheus text format on /metrics.
package server
