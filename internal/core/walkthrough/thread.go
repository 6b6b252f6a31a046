package walkthrough

import "strings"

// Role identifies the author of a thread message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Message is a single entry in a thread. Seq increases monotonically
// within its thread, starting at 1.
type Message struct {
	Role Role
	Text string
	Seq  int
}

// Thread is a branched side-conversation rooted at a step.
type Thread struct {
	Messages        []Message
	Open            bool
	RecordedComment string
}

// Append adds a message with the next sequence number and returns it.
func (t *Thread) Append(role Role, text string) Message {
	msg := Message{Role: role, Text: text, Seq: t.nextSeq()}
	t.Messages = append(t.Messages, msg)
	return msg
}

// AppendChunk extends the trailing assistant message, starting one when the
// thread does not end with an assistant message.
func (t *Thread) AppendChunk(text string) Message {
	if n := len(t.Messages); n > 0 && t.Messages[n-1].Role == RoleAssistant {
		t.Messages[n-1].Text += text
		return t.Messages[n-1]
	}
	return t.Append(RoleAssistant, text)
}

// Last returns the final message, if any.
func (t *Thread) Last() (Message, bool) {
	if len(t.Messages) == 0 {
		return Message{}, false
	}
	return t.Messages[len(t.Messages)-1], true
}

// Transcript returns the user and assistant messages, skipping system
// notices and empty assistant placeholders.
func (t *Thread) Transcript() []Message {
	out := make([]Message, 0, len(t.Messages))
	for _, m := range t.Messages {
		if m.Role == RoleSystem {
			continue
		}
		if m.Role == RoleAssistant && strings.TrimSpace(m.Text) == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (t *Thread) nextSeq() int {
	if len(t.Messages) == 0 {
		return 1
	}
	return t.Messages[len(t.Messages)-1].Seq + 1
}
