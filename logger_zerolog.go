package libevents

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// zerologLogger adapts a zerolog.Logger to Logger. Fields become zerolog context fields.
type zerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger returns a Logger writing through l.
func NewZerologLogger(l zerolog.Logger) Logger {
	return zerologLogger{log: l}
}

// defaultLogger discards everything.
func defaultLogger() Logger {
	return NewZerologLogger(zerolog.Nop())
}

func (z zerologLogger) WithField(key string, value any) Logger {
	return zerologLogger{log: z.log.With().Interface(key, value).Logger()}
}

func (z zerologLogger) Debug(args ...any) { z.log.Debug().Msg(fmt.Sprint(args...)) }

func (z zerologLogger) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }

func (z zerologLogger) Debugln(args ...any) { z.log.Debug().Msg(sprintln(args...)) }

func (z zerologLogger) Info(args ...any) { z.log.Info().Msg(fmt.Sprint(args...)) }

func (z zerologLogger) Infof(format string, args ...any) { z.log.Info().Msgf(format, args...) }

func (z zerologLogger) Infoln(args ...any) { z.log.Info().Msg(sprintln(args...)) }

func (z zerologLogger) Warn(args ...any) { z.log.Warn().Msg(fmt.Sprint(args...)) }

func (z zerologLogger) Warnf(format string, args ...any) { z.log.Warn().Msgf(format, args...) }

func (z zerologLogger) Warnln(args ...any) { z.log.Warn().Msg(sprintln(args...)) }

func (z zerologLogger) Error(args ...any) { z.log.Error().Msg(fmt.Sprint(args...)) }

func (z zerologLogger) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func (z zerologLogger) Errorln(args ...any) { z.log.Error().Msg(sprintln(args...)) }

// sprintln is fmt.Sprintln without the trailing newline zerolog adds itself.
func sprintln(args ...any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}
