package internal

import (
	"os"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

var once sync.Once
var logger *logrus.Logger

// GetLogger returns the logger shared by the client, the store and the demo backend.
// It writes to stderr so CLI output on stdout stays parseable.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.Out = os.Stderr
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	})
	return logger
}

func SetLogLevel(level logrus.Level) {
	GetLogger().SetLevel(level)
}

var _ retryablehttp.LeveledLogger = (*LeveledLogrus)(nil)

// LeveledLogrus adapts a logrus.Logger to retryablehttp's key/value logger. Entries
// carry component=http. Debug is demoted to Trace because retryablehttp logs every
// attempt at that level.
type LeveledLogrus struct {
	entry *logrus.Entry
}

func NewLeveledLogrus(l *logrus.Logger) *LeveledLogrus {
	return &LeveledLogrus{entry: l.WithField("component", "http")}
}

func (l *LeveledLogrus) with(keysAndValues []interface{}) *logrus.Entry {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
	return l.entry.WithFields(fields)
}

func (l *LeveledLogrus) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l *LeveledLogrus) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}

func (l *LeveledLogrus) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Info(msg)
}

func (l *LeveledLogrus) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Trace(msg)
}
