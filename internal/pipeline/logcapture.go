package pipeline

import (
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logBuffer accumulates the run's log lines for Result.Logs. Stage goroutines
// may log concurrently.
type logBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (l *logBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func (l *logBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.String()
}

// newRunLogger tees the base logger with a console-encoded buffer so the
// finished run can hand its full log back in the result.
func newRunLogger(base *zap.Logger) (*zap.Logger, *logBuffer) {
	buf := &logBuffer{}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	capture := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(buf), zapcore.InfoLevel)
	logger := zap.New(zapcore.NewTee(base.Core(), capture))
	return logger, buf
}
