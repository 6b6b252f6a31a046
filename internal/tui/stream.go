package tui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/docent/internal/assist"
	"github.com/colonyops/docent/internal/core/logging"
	"github.com/colonyops/docent/internal/core/session"
)

// ErrAssistantDisabled is reported for requests made without a client.
var ErrAssistantDisabled = errors.New("assistant is disabled")

// replyBuffer is the number of chunks a request may run ahead of the UI.
const replyBuffer = 64

// replyMsg carries one streamed event and the channel it came from.
type replyMsg struct {
	reply session.Reply
	ch    <-chan session.Reply
}

type requestFunc func(ctx context.Context, c assist.Client, emit func(string)) error

// startCtx runs a request in the background. Chunks, then a final Done or
// Failed event, arrive as replyMsg. A cancelled request sends nothing more.
func (m *Model) startCtx(parent context.Context, handle string, run requestFunc) tea.Cmd {
	if m.client == nil {
		return func() tea.Msg {
			return replyMsg{reply: session.Reply{Handle: handle, Kind: session.ReplyFailed, Err: ErrAssistantDisabled}}
		}
	}

	ctx, cancel := context.WithCancel(logging.WithRequestID(parent, handle))
	m.cancels[handle] = cancel

	m.log.Debug().Str("request_id", handle).Msg("request started")

	ch := make(chan session.Reply, replyBuffer)
	client := m.client
	go func() {
		defer close(ch)

		send := func(r session.Reply) {
			select {
			case ch <- r:
			case <-ctx.Done():
			}
		}

		err := run(ctx, client, func(text string) {
			send(session.Reply{Handle: handle, Kind: session.ReplyChunk, Text: text})
		})

		switch {
		case ctx.Err() != nil:
		case err != nil:
			send(session.Reply{Handle: handle, Kind: session.ReplyFailed, Err: err})
		default:
			send(session.Reply{Handle: handle, Kind: session.ReplyDone})
		}
	}()

	return listenForReply(ch)
}

// listenForReply returns a command that waits for the next streamed event.
func listenForReply(ch <-chan session.Reply) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return replyMsg{reply: r, ch: ch}
	}
}

func (m *Model) handleReply(msg replyMsg) tea.Cmd {
	r := msg.reply
	accepted := m.session.Deliver(r)

	if !accepted || r.Kind != session.ReplyChunk {
		if !accepted {
			m.log.Debug().Str("request_id", r.Handle).Msg("reply discarded")
		}
		m.cancel(r.Handle)
		return nil
	}

	return listenForReply(msg.ch)
}

func (m *Model) cancel(handle string) {
	if cancel, ok := m.cancels[handle]; ok {
		cancel()
		delete(m.cancels, handle)
	}
}

func (m *Model) cancelAll() {
	for handle := range m.cancels {
		m.cancel(handle)
	}
}
