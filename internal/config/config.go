// Package config loads the storefront configuration and product catalog.
//
// The file format is line-oriented: `optionName remainingLineIsTheValue`,
// with `[section]` headers and `#` comments. The only section currently
// recognized is [catalog], holding `product <name> = <priceText>` lines.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Product is one card on the storefront page. PriceText is kept as display
// text; the cart parses it on add, exactly like the page's data attributes.
type Product struct {
	Name      string
	PriceText string
}

// Config represents the storefront configuration.
type Config struct {
	// ToastDuration is how long notifications stay visible.
	ToastDuration time.Duration
	// Currency is the symbol used when formatting prices.
	Currency string
	// LogLevel is the minimum slog level ("debug", "info", "warn", "error").
	LogLevel string
	// LogFile, when set, receives JSON log records in addition to the
	// in-memory buffer.
	LogFile string
	// Catalog is the ordered product list shown on the page.
	Catalog []Product
	// Warnings contains any warnings generated during loading.
	Warnings []string
}

// New returns the default configuration: the stock Lumen Home catalog with
// ruble prices and a 3 second toast duration.
func New() *Config {
	return &Config{
		ToastDuration: 3 * time.Second,
		Currency:      "₽",
		LogLevel:      "info",
		Catalog: []Product{
			{Name: "Aurora Floor Lamp", PriceText: "₽199.99"},
			{Name: "Nordic Lounge Chair", PriceText: "₽349.00"},
			{Name: "Linen Throw Pillow", PriceText: "₽24.50"},
			{Name: "Oak Side Table", PriceText: "₽129.00"},
			{Name: "Ceramic Vase Set", PriceText: "₽54.90"},
			{Name: "Wool Area Rug", PriceText: "₽449.00"},
		},
	}
}

// Load loads configuration from the default config file path. A missing
// file yields the defaults, never an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from the specified file path.
//
// SECURITY: symlinks are rejected to prevent reading sensitive files
// through symlink substitution of the config path.
func LoadFromPath(path string) (*Config, error) {
	fi, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("symlink not allowed in config path: %s", path)
	}

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader loads configuration from an io.Reader. Options set in the
// file overwrite the defaults; a [catalog] section replaces the default
// catalog entirely.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var inCatalog bool
	var fileCatalog []Product

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section := strings.Trim(line, "[]")
			switch section {
			case "catalog":
				inCatalog = true
			default:
				inCatalog = false
				cfg.addWarning("unknown section %q", section)
			}
			continue
		}

		parts := strings.SplitN(line, " ", 2)
		optionName := parts[0]
		var value string
		if len(parts) > 1 {
			value = strings.TrimSpace(parts[1])
		}

		if inCatalog {
			if err := parseCatalogLine(&fileCatalog, optionName, value); err != nil {
				return nil, fmt.Errorf("invalid catalog entry: %w", err)
			}
			continue
		}

		if err := parseGlobalOption(cfg, optionName, value); err != nil {
			return nil, fmt.Errorf("invalid option %q: %w", optionName, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	if fileCatalog != nil {
		cfg.Catalog = fileCatalog
	}

	return cfg, nil
}

// parseGlobalOption parses one top-level option line.
// Supported options:
//   - toast-duration <ms>: toast visibility in milliseconds (default: 3000)
//   - currency <symbol>: currency symbol for prices (default: ₽)
//   - log-level <level>: debug, info, warn, or error (default: info)
//   - log-file <path>: optional JSON log destination
func parseGlobalOption(cfg *Config, name, value string) error {
	switch name {
	case "toast-duration":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value %q: %w", value, err)
		}
		if ms < 1 {
			return fmt.Errorf("toast-duration must be at least 1ms: %d", ms)
		}
		cfg.ToastDuration = time.Duration(ms) * time.Millisecond

	case "currency":
		if value == "" {
			return fmt.Errorf("currency symbol cannot be empty")
		}
		cfg.Currency = value

	case "log-level":
		switch value {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = value
		default:
			return fmt.Errorf("unknown log level %q", value)
		}

	case "log-file":
		cfg.LogFile = value

	default:
		cfg.addWarning("unknown option %q", name)
	}
	return nil
}

// parseCatalogLine parses `product <name> = <priceText>`.
func parseCatalogLine(catalog *[]Product, name, value string) error {
	if name != "product" {
		return fmt.Errorf("unknown catalog directive %q", name)
	}
	productName, priceText, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("product line %q missing '= price'", value)
	}
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return fmt.Errorf("product name cannot be empty")
	}
	for _, p := range *catalog {
		if p.Name == productName {
			return fmt.Errorf("duplicate product %q", productName)
		}
	}
	*catalog = append(*catalog, Product{
		Name:      productName,
		PriceText: strings.TrimSpace(priceText),
	})
	return nil
}

// Level converts the configured log level to a slog.Level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// addWarning adds a warning to the config's warnings list.
func (c *Config) addWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.Warnings = append(c.Warnings, msg)
	slog.Warn("[Config] " + msg)
}
