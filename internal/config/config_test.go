package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.ToastDuration)
	require.Equal(t, "₽", cfg.Currency)
	require.Equal(t, "info", cfg.LogLevel)
	require.NotEmpty(t, cfg.Catalog)
}

func TestLoadFromReader_Options(t *testing.T) {
	t.Parallel()

	content := `# storefront settings
toast-duration 1500
currency $
log-level debug
log-file /tmp/lumen.log
`
	cfg, err := LoadFromReader(strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, cfg.ToastDuration)
	require.Equal(t, "$", cfg.Currency)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "/tmp/lumen.log", cfg.LogFile)
	require.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadFromReader_CatalogReplacesDefaults(t *testing.T) {
	t.Parallel()

	content := `[catalog]
product Walnut Desk = ₽899.00
product Brass Lamp = ₽149.50
`
	cfg, err := LoadFromReader(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, cfg.Catalog, 2)
	require.Equal(t, Product{Name: "Walnut Desk", PriceText: "₽899.00"}, cfg.Catalog[0])
	require.Equal(t, Product{Name: "Brass Lamp", PriceText: "₽149.50"}, cfg.Catalog[1])
}

func TestLoadFromReader_CatalogErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"missing price", "[catalog]\nproduct Desk\n"},
		{"empty name", "[catalog]\nproduct = 10\n"},
		{"duplicate", "[catalog]\nproduct Desk = 1\nproduct Desk = 2\n"},
		{"unknown directive", "[catalog]\nitem Desk = 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
		})
	}
}

func TestLoadFromReader_InvalidOptions(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		"toast-duration abc\n",
		"toast-duration 0\n",
		"log-level loud\n",
		"currency\n",
	} {
		_, err := LoadFromReader(strings.NewReader(content))
		require.Error(t, err, "content %q", content)
	}
}

func TestLoadFromReader_UnknownOptionWarns(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader("colour purple\n"))
	require.NoError(t, err)
	require.Len(t, cfg.Warnings, 1)
	require.Contains(t, cfg.Warnings[0], "colour")
}

func TestLoadFromPath_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Equal(t, New().Currency, cfg.Currency)
}

func TestLoadFromPath_RejectsSymlink(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires elevation on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	require.NoError(t, os.WriteFile(target, []byte("currency $\n"), 0o644))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	_, err := LoadFromPath(link)
	require.Error(t, err)
	require.Contains(t, err.Error(), "symlink")
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("LUMEN_CONFIG", "/tmp/custom-config")

	path, err := Path()
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom-config", path)
}
