package journal

// Option applies a configuration option to the journal.
type Option func(*ringJournal)

// WithMaxSize bounds the number of retained events. Non-positive values keep the default.
func WithMaxSize(size int) Option {
	return func(j *ringJournal) {
		if size > 0 {
			j.maxSize = size
		}
	}
}
