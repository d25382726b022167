package rng

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level.
// It is used to trace why two runs diverged.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLogged creates a LoggedSource that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.draws++
	l.logger.Debug("rng draw",
		zap.Int("draw", l.draws),
		zap.String("kind", "intn"),
		zap.Int("n", n),
		zap.Int("value", v),
	)
	return v
}

// Float64 draws from the wrapped source and logs the result.
func (l *LoggedSource) Float64() float64 {
	v := l.src.Float64()
	l.draws++
	l.logger.Debug("rng draw",
		zap.Int("draw", l.draws),
		zap.String("kind", "float64"),
		zap.Float64("value", v),
	)
	return v
}

// Draws reports how many values have been drawn so far.
func (l *LoggedSource) Draws() int {
	return l.draws
}
