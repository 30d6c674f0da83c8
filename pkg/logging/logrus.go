package logging

import (
	"io"

	"github.com/janael-pinheiro/sensorhub/pkg/entities"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Logrus hands out component loggers that share one output and level.
type Logrus struct {
	logger *logrus.Logger
}

// ParseLevel validates a logrus level name.
func ParseLevel(level string) (logrus.Level, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, errors.Wrapf(entities.ErrInvalidInput, "log level %q", level)
	}
	return parsed, nil
}

// NewLogrus creates the shared logger. Unknown levels fall back to info.
func NewLogrus(level string, output io.Writer) *Logrus {
	log := logrus.New()
	parsed, _ := ParseLevel(level)
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(output)
	return &Logrus{logger: log}
}

// Get returns a logger tagged with the component it serves.
func (l *Logrus) Get(component string) *logrus.Entry {
	return l.logger.WithFields(logrus.Fields{
		"Context": component,
	})
}
