// Package script runs a JavaScript session file against the storefront
// components — the same host model the page originally ran under. Scripts
// execute on a goja_nodejs event loop, so setTimeout and friends behave as
// on the page, and toast auto-expiry timers drain before the run returns.
//
// The native module "lumen:store" exposes the Application entry points plus
// direct component access:
//
//	const store = require('lumen:store');
//	store.addToCart('Aurora Floor Lamp', '₽199.99');
//	store.explore();
//	store.submitNewsletter('a@b.com');
//	const snap = store.viewCart();        // {items, totalPrice, itemCount}
//	const id = store.notify.info('hi');
//	store.notify.dismiss(id);
//	store.analytics.record('custom', {k: 1});
//	store.validate.isValidEmail('a@b');   // false
package script

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"

	"github.com/lumenhome/lumen/internal/app"
	"github.com/lumenhome/lumen/internal/form"
	"github.com/lumenhome/lumen/internal/notify"
)

// logRenderer reports toast activity through the logger; script sessions
// have no visual surface.
type logRenderer struct {
	logger *slog.Logger
}

func (r *logRenderer) Show(rec notify.Record) {
	r.logger.Info("toast shown",
		"id", rec.ID, "severity", string(rec.Severity), "message", rec.Message)
}

func (r *logRenderer) Remove(id string) {
	r.logger.Info("toast removed", "id", id)
}

// logBadge mirrors the navbar badge as log lines.
type logBadge struct {
	logger *slog.Logger
}

func (b *logBadge) SetCount(n int) {
	b.logger.Info("cart badge", "count", n)
}

// Run executes the script file and blocks until the event loop drains —
// including any pending toast expiry timers. The final analytics report is
// logged before returning.
func Run(path string, toastDuration time.Duration, logger *slog.Logger) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	application := app.New(app.Options{
		Renderer:      &logRenderer{logger: logger},
		Badge:         &logBadge{logger: logger},
		ToastDuration: toastDuration,
		Logger:        logger,
	})

	if err := runSource(path, string(src), application); err != nil {
		return err
	}

	rep := application.Report()
	logger.Info("script session ended",
		"events", rep.TotalEvents,
		"duration", rep.SessionDuration.String(),
		"cartItems", application.Cart.ItemCount(),
	)
	return nil
}

// runSource executes src on a fresh event loop wired to application.
// goja.Runtime is not goroutine-safe; everything below touches the VM only
// from inside the loop.
func runSource(name, src string, application *app.Application) (err error) {
	registry := require.NewRegistry()
	registry.RegisterNativeModule("lumen:store", storeModule(application))

	loop := eventloop.NewEventLoop(
		eventloop.WithRegistry(registry),
		eventloop.EnableConsole(true),
	)

	defer func() {
		// A script throw surfaces as a goja panic out of loop.Run.
		if r := recover(); r != nil {
			err = fmt.Errorf("script %s failed: %v", name, r)
		}
	}()

	loop.Run(func(vm *goja.Runtime) {
		if _, runErr := vm.RunScript(name, src); runErr != nil {
			err = fmt.Errorf("script %s failed: %w", name, runErr)
		}
	})
	return err
}

// storeModule builds the "lumen:store" native module.
func storeModule(application *app.Application) func(vm *goja.Runtime, module *goja.Object) {
	return func(vm *goja.Runtime, module *goja.Object) {
		exports := module.Get("exports").(*goja.Object)

		// Application entry points (the page's event handlers).
		_ = exports.Set("addToCart", func(name, priceText string) {
			application.AddToCart(name, priceText)
		})
		_ = exports.Set("removeFromCart", func(name string) {
			application.RemoveFromCart(name)
		})
		_ = exports.Set("clearCart", func() {
			application.ClearCart()
		})
		_ = exports.Set("explore", func() {
			application.Explore()
		})
		_ = exports.Set("submitNewsletter", func(email string) bool {
			return application.SubmitNewsletter(email)
		})
		_ = exports.Set("viewCart", func() map[string]any {
			return snapshotToJS(application)
		})

		// Component-level access.
		notifyObj := vm.NewObject()
		_ = notifyObj.Set("show", func(call goja.FunctionCall) goja.Value {
			message := call.Argument(0).String()
			severity := notify.SeverityInfo
			if s := call.Argument(1); !goja.IsUndefined(s) {
				severity = notify.Severity(s.String())
			}
			var duration time.Duration
			if d := call.Argument(2); !goja.IsUndefined(d) {
				duration = time.Duration(d.ToInteger()) * time.Millisecond
			}
			return vm.ToValue(application.Notify.Show(message, severity, duration))
		})
		_ = notifyObj.Set("dismiss", application.Notify.Dismiss)
		_ = notifyObj.Set("success", application.Notify.Success)
		_ = notifyObj.Set("error", application.Notify.Error)
		_ = notifyObj.Set("warning", application.Notify.Warning)
		_ = notifyObj.Set("info", application.Notify.Info)
		_ = notifyObj.Set("live", func() int {
			return len(application.Notify.Live())
		})
		_ = exports.Set("notify", notifyObj)

		analyticsObj := vm.NewObject()
		_ = analyticsObj.Set("record", func(call goja.FunctionCall) goja.Value {
			name := call.Argument(0).String()
			var payload map[string]any
			if p := call.Argument(1).Export(); p != nil {
				payload, _ = p.(map[string]any)
			}
			application.Analytics.Record(name, payload)
			return goja.Undefined()
		})
		_ = analyticsObj.Set("report", func() map[string]any {
			rep := application.Analytics.Report()
			events := make([]map[string]any, len(rep.Events))
			for i, e := range rep.Events {
				events[i] = map[string]any{
					"name":      e.Name,
					"payload":   e.Payload,
					"elapsedMs": e.Elapsed.Milliseconds(),
				}
			}
			return map[string]any{
				"totalEvents":       rep.TotalEvents,
				"sessionDurationMs": rep.SessionDuration.Milliseconds(),
				"events":            events,
			}
		})
		_ = exports.Set("analytics", analyticsObj)

		validateObj := vm.NewObject()
		_ = validateObj.Set("isValidEmail", form.IsValidEmail)
		_ = validateObj.Set("isNonEmpty", form.IsNonEmpty)
		_ = validateObj.Set("validateForm", func(call goja.FunctionCall) goja.Value {
			fields := make(map[string]string)
			if obj := call.Argument(0).ToObject(vm); obj != nil {
				for _, k := range obj.Keys() {
					fields[k] = obj.Get(k).String()
				}
			}
			res := form.ValidateForm(fields)
			out := vm.NewObject()
			_ = out.Set("isValid", res.IsValid)
			_ = out.Set("errors", res.Errors)
			return out
		})
		_ = exports.Set("validate", validateObj)
	}
}

func snapshotToJS(application *app.Application) map[string]any {
	snap := application.ViewCart()
	items := make([]map[string]any, len(snap.Items))
	for i, it := range snap.Items {
		items[i] = map[string]any{
			"name":      it.Name,
			"unitPrice": it.UnitPrice,
			"quantity":  it.Quantity,
		}
	}
	return map[string]any{
		"items":      items,
		"totalPrice": snap.TotalPrice,
		"itemCount":  snap.ItemCount,
	}
}
