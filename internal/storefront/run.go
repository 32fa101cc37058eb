package storefront

import (
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/lumenhome/lumen/internal/app"
	"github.com/lumenhome/lumen/internal/applog"
	"github.com/lumenhome/lumen/internal/config"
)

// Run starts the interactive storefront and blocks until the user quits.
// Output defaults to the terminal; tests can redirect it.
func Run(cfg *config.Config, logger *slog.Logger, logs *applog.Handler, output io.Writer) error {
	zones := zone.New()
	defer zones.Close()

	bridge := &Bridge{}
	application := app.New(app.Options{
		Renderer:      bridge,
		Badge:         bridge,
		ToastDuration: cfg.ToastDuration,
		Logger:        logger,
	})

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
	if output != nil {
		opts = append(opts, tea.WithOutput(output))
	}

	p := tea.NewProgram(New(application, cfg, zones, logs), opts...)
	bridge.Attach(p)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("storefront exited with error: %w", err)
	}

	rep := application.Report()
	logger.Info("session ended",
		"events", rep.TotalEvents,
		"duration", rep.SessionDuration.String(),
		"cartItems", application.Cart.ItemCount(),
	)
	return nil
}
