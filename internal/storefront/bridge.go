package storefront

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lumenhome/lumen/internal/notify"
)

// refreshMsg tells the model to re-read component state. It is sent from
// notification timer callbacks, which run off the bubbletea goroutine.
type refreshMsg struct{}

// badgeCountMsg carries a cart badge update.
type badgeCountMsg struct{ count int }

// Bridge forwards component-side callbacks into the bubbletea program as
// messages. The program handle is bound late because the Application (and
// therefore the renderer) must exist before tea.NewProgram is called.
//
// It implements notify.Renderer and app.Badge.
type Bridge struct {
	mu sync.Mutex
	p  *tea.Program
	// buffered while the program is not yet attached, so nothing sent
	// during startup is lost
	pending []tea.Msg
}

// Attach binds the program and flushes anything buffered before startup.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	b.p = p
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, msg := range pending {
		p.Send(msg)
	}
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	p := b.p
	if p == nil {
		b.pending = append(b.pending, msg)
	}
	b.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

// Show implements notify.Renderer. The model reads the live toast list from
// the center itself; the message is just a repaint trigger.
func (b *Bridge) Show(notify.Record) { b.send(refreshMsg{}) }

// Remove implements notify.Renderer.
func (b *Bridge) Remove(string) { b.send(refreshMsg{}) }

// SetCount implements app.Badge.
func (b *Bridge) SetCount(n int) { b.send(badgeCountMsg{count: n}) }
