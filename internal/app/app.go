// Package app wires the storefront components together: it owns the cart,
// notification center, and analytics recorder, and maps host events (clicks,
// form submits) onto their operations. Hosts never mutate component state
// directly; everything goes through the Application entry points.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lumenhome/lumen/internal/analytics"
	"github.com/lumenhome/lumen/internal/cart"
	"github.com/lumenhome/lumen/internal/form"
	"github.com/lumenhome/lumen/internal/notify"
)

// Badge is the visible cart count element. Implementations show the count
// when it is positive and hide it at zero.
type Badge interface {
	SetCount(n int)
}

// Application orchestrates one storefront session. Construct it with New
// and inject it wherever handlers are wired; there is no package-level
// instance.
type Application struct {
	Cart      *cart.Cart
	Notify    *notify.Center
	Analytics *analytics.Recorder

	badge         Badge
	logger        *slog.Logger
	toastDuration time.Duration
}

// Options configures an Application.
type Options struct {
	// Renderer receives toast show/remove requests; nil skips rendering.
	Renderer notify.Renderer
	// Badge is kept in sync with the cart item count; nil is silently
	// skipped.
	Badge Badge
	// ToastDuration overrides the default toast visibility.
	ToastDuration time.Duration
	// Scheduler overrides the notification timer source, for tests.
	Scheduler notify.Scheduler
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// New constructs an Application and its components.
func New(opts Options) *Application {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var notifyOpts []notify.Option
	if opts.Scheduler != nil {
		notifyOpts = append(notifyOpts, notify.WithScheduler(opts.Scheduler))
	}

	a := &Application{
		Cart:      cart.New(),
		Notify:    notify.New(opts.Renderer, notifyOpts...),
		Analytics: analytics.New(),
		badge:     opts.Badge,
		logger:    opts.Logger,
	}
	a.toastDuration = opts.ToastDuration

	// The badge follows every cart mutation.
	a.Cart.Subscribe(func(map[string]any) {
		a.syncBadge()
	})

	return a
}

// AddToCart handles an add-to-cart click for the named product. An empty
// name surfaces as an error toast; it never reaches the cart.
func (a *Application) AddToCart(productName, priceText string) {
	if !a.Cart.AddItem(productName, priceText) {
		a.logger.Warn("add to cart rejected", "reason", "empty name")
		a.showToast("Could not add item to cart", notify.SeverityError)
		return
	}

	a.logger.Info("added to cart", "item", productName, "price", priceText)
	a.Analytics.Record("add_to_cart", map[string]any{
		"item":  productName,
		"price": priceText,
	})
	a.showToast(fmt.Sprintf("%s added to cart", productName), notify.SeveritySuccess)
}

// RemoveFromCart handles a remove click. Removing an absent item is a
// silent no-op in the cart; the analytics event is recorded either way.
func (a *Application) RemoveFromCart(productName string) {
	a.Cart.RemoveItem(productName)
	a.Analytics.Record("remove_from_cart", map[string]any{"item": productName})
	a.logger.Info("removed from cart", "item", productName)
}

// ClearCart empties the cart.
func (a *Application) ClearCart() {
	a.Cart.Clear()
	a.Analytics.Record("clear_cart", nil)
	a.showToast("Cart cleared", notify.SeverityInfo)
}

// Explore handles the explore-collection click.
func (a *Application) Explore() {
	a.Analytics.Record("explore_click", nil)
	a.showToast("Scroll down to explore the collection", notify.SeverityInfo)
}

// ViewCart handles the cart-icon click and returns the current snapshot for
// the host to display.
func (a *Application) ViewCart() cart.Snapshot {
	snap := a.Cart.Snapshot()
	a.Analytics.Record("view_cart", map[string]any{
		"items": len(snap.Items),
		"total": snap.TotalPrice,
	})
	return snap
}

// SubmitNewsletter validates the email and reports the outcome through a
// toast. Validation failures are user-visible only; no error is returned.
// The boolean reports whether the signup was accepted.
func (a *Application) SubmitNewsletter(email string) bool {
	res := form.ValidateForm(map[string]string{"email": email})
	if !res.IsValid {
		a.logger.Warn("newsletter signup rejected", "error", res.Errors["email"])
		a.showToast(res.Errors["email"], notify.SeverityError)
		return false
	}

	a.Analytics.Record("newsletter_signup", map[string]any{"email": email})
	a.logger.Info("newsletter signup", "email", email)
	a.showToast("Thanks for subscribing!", notify.SeveritySuccess)
	return true
}

// DismissToast forwards a toast close click to the notification center.
func (a *Application) DismissToast(id string) {
	a.Notify.Dismiss(id)
}

// Report returns the session analytics report.
func (a *Application) Report() analytics.Report {
	return a.Analytics.Report()
}

func (a *Application) showToast(message string, severity notify.Severity) {
	a.Notify.Show(message, severity, a.toastDuration)
}

func (a *Application) syncBadge() {
	if a.badge == nil {
		return // optional collaborator, skipped when absent
	}
	a.badge.SetCount(a.Cart.ItemCount())
}
