package logger

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	zlog.Info().Msgf(format, args...)
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msgf(format, args...)
}

// Error logs err with a formatted message at error level
func Error(err error, format string, args ...interface{}) {
	zlog.Error().Err(err).Msgf(format, args...)
}
