// Package cmd implements the command-line interface of rubin.
//
// The package is organized into several subpackages:
//
//   - serve: starts the rubin server
//   - kv: client commands (set, get, rm, clr, incr, decr, dump, noop, raw, perf)
//   - util: shared flag and configuration helpers (internal use)
//
// Every flag can also be set via an environment variable RUBIN_<FLAG>
// (e.g. RUBIN_DATA_DIR=/var/lib/rubin). .env and .env.local are loaded on start.
package cmd
