package bplus

import "go.uber.org/zap"

type options struct {
	logger           *zap.Logger
	leafCapacity     int
	internalCapacity int
	cacheBytes       int64
}

// Option configures Open.
type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLeafCapacity caps entries per leaf below the page limit. Reopening a
// file with a different capacity is safe: nodes already holding more entries
// simply count as full.
func WithLeafCapacity(n int) Option {
	return func(o *options) { o.leafCapacity = n }
}

func WithInternalCapacity(n int) Option {
	return func(o *options) { o.internalCapacity = n }
}

// WithPageCache puts a page cache of roughly maxBytes in front of the file.
func WithPageCache(maxBytes int64) Option {
	return func(o *options) { o.cacheBytes = maxBytes }
}

func checkCapacity(n, max int) error {
	if n == 0 {
		return nil
	}
	if n < MinCapacity || n > max {
		return ErrInvalidCapacity
	}
	return nil
}
