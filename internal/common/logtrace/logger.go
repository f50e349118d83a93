package logtrace

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the process-wide logger. PKGFEED_LOG_LEVEL overrides
// the default info level.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level := zerolog.InfoLevel
	if s := os.Getenv("PKGFEED_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(s); err == nil {
			level = parsed
		}
	}
	log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("service", "pkgfeed").Logger()
}
