package logging

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const prefix = "rekog"

// New returns the process logger.
func New(level logrus.Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

// DebugSink writes every line of a diagnostic payload as its own log entry.
type DebugSink struct {
	logger logrus.FieldLogger
}

func NewDebugSink(logger logrus.FieldLogger) *DebugSink {
	return &DebugSink{logger: logger}
}

func (s *DebugSink) Debug(message string) {
	for _, line := range strings.Split(message, "\n") {
		s.logger.Infof("%s: %s", prefix, line)
	}
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) Debug(string) {}

// RecorderSink keeps lines in memory.
type RecorderSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *RecorderSink) Debug(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, strings.Split(message, "\n")...)
}

func (s *RecorderSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}
