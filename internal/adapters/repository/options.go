package repository

// Option applies a configuration option to the RosterStore.
type Option func(*RosterStore)

// WithMaxNoteLength caps the length of free-text notes in runes.
// Zero or negative disables the cap.
func WithMaxNoteLength(n int) Option {
	return func(s *RosterStore) {
		s.maxNoteLen = n
	}
}
