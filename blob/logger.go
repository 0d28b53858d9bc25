package blob

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the blob package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the blob package's logger.
// This must be called before any decoder is created; decoders created with
// WithLogger use their own logger instead.
func SetLogger(l *zap.Logger) {
	logger = l
}
