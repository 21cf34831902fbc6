// Package pstore implements a persistent string store: a local store
// (lstore) plus a storage directory holding a JSON snapshot named
// rubinstore.json.
//
// Construction:
//
//   - New(fs, dir): creates dir if needed and starts empty.
//   - FromExisting(fs, dir): New followed by Load.
//   - FromStore(fs, dir, seed): starts with the content of an existing local store.
//
// Flush policy:
//
//	With write-on-update set, Insert, Remove and Clear write the full snapshot
//	before they return, which costs one serialization of the whole store per
//	mutation. Without it nothing is written until Write is called, and updates
//	since the last Write are lost on a crash.
//
// Snapshot format:
//
//	{
//	  "strings": {
//	    "user:1000": "rebecca"
//	  }
//	}
//
// Writes overwrite the file in place and are not crash-atomic. A crash while
// writing can leave a truncated file, which Load reports as a
// store.RetCCorruptSnapshot error instead of starting with partial data.
//
// All file access goes through an afero.Fs, tests use afero.NewMemMapFs().
package pstore
