package store

import "strconv"

// Add interprets the value of key as a decimal integer, adds delta and stores the result.
// Absent or non-numeric values count as 0. The new value is returned as text.
//
// Counters live in the same string map as every other value, Add is not atomic
// on its own (callers serialize access through Shared).
func Add(s IStore, key string, delta int64) (string, error) {
	current, err := s.Get(key)
	if err != nil {
		return "", err
	}

	n, err := strconv.ParseInt(current, 10, 64)
	if err != nil {
		n = 0
	}

	return s.Insert(key, strconv.FormatInt(n+delta, 10))
}
