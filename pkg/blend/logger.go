package blend

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called while blends run on other goroutines.
var loggerPtr atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.Nop()
	loggerPtr.Store(&l)
}

// SetLogger configures the logger for blend. By default blend produces no log
// output. Per-region events are logged at debug level.
func SetLogger(l zerolog.Logger) {
	loggerPtr.Store(&l)
}

// Logger returns the current logger used by blend.
func Logger() *zerolog.Logger {
	return loggerPtr.Load()
}
