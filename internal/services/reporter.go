package services

import "sync"

// Reporter receives user-facing outcome messages from the command handlers.
type Reporter interface {
	ReportError(msg string)
	ReportSuccess(msg string)
	ReportInfo(msg string)
}

// Message levels.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelError   = "error"
)

// Message is one reported line.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Messages collects reports in order. The zero value is ready to use.
type Messages struct {
	mu   sync.Mutex
	list []Message
}

func (m *Messages) ReportError(msg string)   { m.add(LevelError, msg) }
func (m *Messages) ReportSuccess(msg string) { m.add(LevelSuccess, msg) }
func (m *Messages) ReportInfo(msg string)    { m.add(LevelInfo, msg) }

func (m *Messages) add(level, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, Message{Level: level, Text: text})
}

// All returns a copy of every message reported so far.
func (m *Messages) All() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.list...)
}

// Last returns the final message, which carries the outcome.
func (m *Messages) Last() (Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.list) == 0 {
		return Message{}, false
	}
	return m.list[len(m.list)-1], true
}

// Discard drops every report.
var Discard Reporter = discard{}

type discard struct{}

func (discard) ReportError(string)   {}
func (discard) ReportSuccess(string) {}
func (discard) ReportInfo(string)    {}
