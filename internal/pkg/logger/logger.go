package logger

import (
	"go.uber.org/zap"
)

// New builds the application logger. Production mode emits JSON,
// development mode emits human-readable console output.
func New(isProduction bool) (*zap.Logger, error) {
	if isProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
