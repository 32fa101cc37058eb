package storefront

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lumenhome/lumen/internal/cart"
)

const cardsPerRow = 3

// View implements tea.Model. The whole frame is passed through zone.Scan so
// every click target marked below becomes hit-testable in Update.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.viewHeader())
	sections = append(sections, m.viewHero())
	sections = append(sections, m.viewCatalog())
	sections = append(sections, m.viewNewsletter())

	if m.cartOpen {
		sections = append(sections, m.viewCartPanel())
	}
	if m.debugOpen {
		sections = append(sections, m.viewDebug())
	}
	if toasts := m.viewToasts(); toasts != "" {
		sections = append(sections, toasts)
	}

	sections = append(sections, mutedStyle.Render(
		"1-"+strconv.Itoa(len(m.cfg.Catalog))+" add · e explore · c cart · n newsletter · d debug · q quit"))

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewHeader() string {
	title := headerStyle.Render("LUMEN HOME")

	// The badge is hidden entirely at zero, like the page's navbar badge.
	icon := "🛒"
	if m.badge > 0 {
		icon += " " + badgeStyle.Render(strconv.Itoa(m.badge))
	}
	cartIcon := m.zones.Mark(zoneCartIcon, icon)

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(icon) - 2
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, strings.Repeat(" ", gap), cartIcon)
}

func (m Model) viewHero() string {
	tagline := "Light up your living space"
	button := m.zones.Mark(zoneExplore, exploreStyle.Render("Explore the collection"))
	return lipgloss.JoinVertical(lipgloss.Left, "", tagline, button, "")
}

func (m Model) viewCatalog() string {
	var rows []string
	var row []string

	for i, p := range m.cfg.Catalog {
		name := cardTitleStyle.Render(truncate(p.Name, 22))
		price := priceStyle.Render(p.PriceText)
		button := m.zones.Mark(zoneProduct+strconv.Itoa(i),
			buttonStyle.Render(fmt.Sprintf("[%d] Add to cart", i+1)))

		card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, name, price, button))
		row = append(row, card)

		if len(row) == cardsPerRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewNewsletter() string {
	label := "Join the newsletter:"
	submit := m.zones.Mark(zoneNewsletter, buttonStyle.Render("Subscribe"))
	line := lipgloss.JoinHorizontal(lipgloss.Center, m.email.View(), " ", submit)
	return lipgloss.JoinVertical(lipgloss.Left, "", label, line)
}

func (m Model) viewCartPanel() string {
	var lines []string

	if len(m.snap.Items) == 0 {
		lines = append(lines, mutedStyle.Render("Your cart is empty"))
	} else {
		for _, item := range m.snap.Items {
			lines = append(lines, m.viewCartLine(item))
		}
		lines = append(lines, "")
		lines = append(lines, cardTitleStyle.Render(
			"Total: "+cart.FormatPrice(m.snap.TotalPrice, m.cfg.Currency)))
		lines = append(lines, m.zones.Mark(zoneCartClear, buttonStyle.Render("Clear cart [x]")))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewCartLine(item cart.LineItem) string {
	remove := m.zones.Mark(zoneCartRemove+item.Name, mutedStyle.Render("✕"))
	return fmt.Sprintf("%s ×%d  %s  %s",
		truncate(item.Name, 24),
		item.Quantity,
		priceStyle.Render(cart.FormatPrice(item.UnitPrice*float64(item.Quantity), m.cfg.Currency)),
		remove)
}

func (m Model) viewToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}

	var lines []string
	for _, rec := range m.toasts {
		style, ok := toastStyles[string(rec.Severity)]
		if !ok {
			style = toastStyles["info"]
		}
		body := style.Render(truncate(rec.Message, 48))
		closeMark := m.zones.Mark(zoneToast+rec.ID, " ✕")
		lines = append(lines, body+closeMark)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

const (
	debugRows = 8
	timeRound = 100 * time.Millisecond
)

func (m Model) viewDebug() string {
	rep := m.app.Report()
	header := fmt.Sprintf("analytics: %d events over %s",
		rep.TotalEvents, rep.SessionDuration.Round(timeRound))

	var logLines []string
	if m.logs != nil {
		for _, e := range m.logs.Recent(0) {
			logLines = append(logLines, fmt.Sprintf("%s %-5s %s",
				e.Time.Format("15:04:05"), e.Level, truncate(e.Message, 40)))
		}
	}

	top := m.debugTop
	if top > len(logLines)-debugRows {
		top = len(logLines) - debugRows
	}
	if top < 0 {
		top = 0
	}
	visible := logLines[top:min(top+debugRows, len(logLines))]

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, visible...),
		" ",
		scrollbar(len(logLines), min(debugRows, max(len(visible), 1)), top),
	)

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		mutedStyle.Render(header), body))
}
