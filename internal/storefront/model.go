// Package storefront is the interactive terminal host for the Lumen page.
// It renders the product grid, newsletter form, cart panel, and toast stack,
// and maps mouse clicks (via bubblezone) and key presses onto Application
// entry points — the terminal equivalent of the page's DOM wiring.
package storefront

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/lumenhome/lumen/internal/app"
	"github.com/lumenhome/lumen/internal/applog"
	"github.com/lumenhome/lumen/internal/cart"
	"github.com/lumenhome/lumen/internal/config"
	"github.com/lumenhome/lumen/internal/notify"
)

// Zone id prefixes for click targets.
const (
	zoneExplore    = "explore"
	zoneCartIcon   = "cart-icon"
	zoneNewsletter = "newsletter-submit"
	zoneCartClear  = "cart-clear"
	zoneProduct    = "product:" // + catalog index
	zoneToast      = "toast:"   // + record id
	zoneCartRemove = "cart-remove:" // + item name
)

// Model is the bubbletea model for the storefront page.
type Model struct {
	app   *app.Application
	cfg   *config.Config
	zones *zone.Manager
	logs  *applog.Handler

	email        textinput.Model
	emailFocused bool

	toasts    []notify.Record
	snap      cart.Snapshot
	badge     int
	cartOpen  bool
	debugOpen bool
	debugTop  int

	width  int
	height int
}

// New builds the initial model. logs may be nil; the debug overlay then
// shows analytics only.
func New(application *app.Application, cfg *config.Config, zones *zone.Manager, logs *applog.Handler) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 64
	email.Width = 28

	return Model{
		app:   application,
		cfg:   cfg,
		zones: zones,
		logs:  logs,
		email: email,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		return m.refresh(), nil

	case badgeCountMsg:
		m.badge = msg.count
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.emailFocused {
		var cmd tea.Cmd
		m.email, cmd = m.email.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.emailFocused {
		switch msg.String() {
		case "enter":
			return m.submitNewsletter(), nil
		case "esc":
			m.emailFocused = false
			m.email.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.email, cmd = m.email.Update(msg)
			return m, cmd
		}
	}

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "e":
		m.app.Explore()
		return m.refresh(), nil
	case "c":
		return m.toggleCart(), nil
	case "d":
		m.debugOpen = !m.debugOpen
		m.debugTop = 0
		return m, nil
	case "n":
		m.emailFocused = true
		return m, m.email.Focus()
	case "x":
		if m.cartOpen {
			m.app.ClearCart()
			return m.refresh(), nil
		}
	case "up":
		if m.debugOpen && m.debugTop > 0 {
			m.debugTop--
		}
		return m, nil
	case "down":
		if m.debugOpen {
			m.debugTop++
		}
		return m, nil
	default:
		// Digits map to catalog positions, mirroring the page's one
		// click per product card.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.cfg.Catalog) {
			p := m.cfg.Catalog[n-1]
			m.app.AddToCart(p.Name, p.PriceText)
			return m.refresh(), nil
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.zones.Get(zoneExplore).InBounds(msg) {
		m.app.Explore()
		return m.refresh(), nil
	}
	if m.zones.Get(zoneCartIcon).InBounds(msg) {
		return m.toggleCart(), nil
	}
	if m.zones.Get(zoneNewsletter).InBounds(msg) {
		return m.submitNewsletter(), nil
	}
	if m.cartOpen && m.zones.Get(zoneCartClear).InBounds(msg) {
		m.app.ClearCart()
		return m.refresh(), nil
	}

	for i, p := range m.cfg.Catalog {
		if m.zones.Get(zoneProduct + strconv.Itoa(i)).InBounds(msg) {
			m.app.AddToCart(p.Name, p.PriceText)
			return m.refresh(), nil
		}
	}

	for _, rec := range m.toasts {
		if m.zones.Get(zoneToast + rec.ID).InBounds(msg) {
			m.app.DismissToast(rec.ID)
			return m.refresh(), nil
		}
	}

	if m.cartOpen {
		for _, item := range m.snap.Items {
			if m.zones.Get(zoneCartRemove + item.Name).InBounds(msg) {
				m.app.RemoveFromCart(item.Name)
				return m.refresh(), nil
			}
		}
	}

	return m, nil
}

func (m Model) toggleCart() Model {
	m.cartOpen = !m.cartOpen
	if m.cartOpen {
		m.snap = m.app.ViewCart()
	}
	return m.refresh()
}

func (m Model) submitNewsletter() Model {
	m.app.SubmitNewsletter(m.email.Value())
	m.email.SetValue("")
	m.emailFocused = false
	m.email.Blur()
	return m.refresh()
}

// refresh re-reads component state. Component calls are synchronous, so by
// the time an Application entry point returns, the state below is current.
func (m Model) refresh() Model {
	m.toasts = m.app.Notify.Live()
	m.snap = m.app.Cart.Snapshot()
	m.badge = m.app.Cart.ItemCount()
	return m
}
