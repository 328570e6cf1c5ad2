package spectrum

import "time"

// SetClock replaces the record timestamp source.
func (s *Store) SetClock(now func() time.Time) { s.now = now }
