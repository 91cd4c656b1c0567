package logger

import "sync"

// Event is one captured log call. Used by tests to assert on emitted
// observability events without scraping stdout.
type Event struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

// RecordingLogger is an ILogger that keeps every event in memory.
type RecordingLogger struct {
	mu     sync.Mutex
	Events []Event
}

var _ ILogger = &RecordingLogger{}

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Events = append(l.Events, Event{Level: level, Module: module, Message: message, Details: details})
}

func (l *RecordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("DEBUG", module, message, details)
}

func (l *RecordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("INFO", module, message, details)
}

func (l *RecordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("WARN", module, message, details)
}

func (l *RecordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("ERROR", module, message, details)
}

func (l *RecordingLogger) Sync() error { return nil }

// ByModule returns the captured events for one module.
func (l *RecordingLogger) ByModule(module string) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Event
	for _, e := range l.Events {
		if e.Module == module {
			out = append(out, e)
		}
	}
	return out
}
