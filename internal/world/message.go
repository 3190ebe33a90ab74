package world

// MessageLogSize is how many lines the on-screen log keeps.
const MessageLogSize = 15

// Message is one line of the player-facing log.
type Message struct {
	Text  string
	Color Color
}

// Sink receives player-facing messages.
type Sink interface {
	Add(text string, color Color)
}

// MessageLog is a bounded FIFO of messages; the oldest line falls off first.
type MessageLog struct {
	lines []Message
	max   int
}

func NewMessageLog(max int) *MessageLog {
	if max <= 0 {
		max = MessageLogSize
	}
	return &MessageLog{lines: make([]Message, 0, max), max: max}
}

func (l *MessageLog) Add(text string, color Color) {
	if len(l.lines) == l.max {
		copy(l.lines, l.lines[1:])
		l.lines = l.lines[:l.max-1]
	}
	l.lines = append(l.lines, Message{Text: text, Color: color})
}

func (l *MessageLog) Len() int { return len(l.lines) }

// Recent returns up to n newest lines, oldest first.
func (l *MessageLog) Recent(n int) []Message {
	if n < 0 {
		n = 0
	}
	if n > len(l.lines) {
		n = len(l.lines)
	}
	out := make([]Message, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}

// Last returns the newest line.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.lines) == 0 {
		return Message{}, false
	}
	return l.lines[len(l.lines)-1], true
}

// TeeSink forwards every message to all of its sinks in order.
type TeeSink []Sink

func (t TeeSink) Add(text string, color Color) {
	for _, s := range t {
		if s != nil {
			s.Add(text, color)
		}
	}
}
