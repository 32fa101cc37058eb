package form

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"first.last@example.co", true},
		{"user+tag@sub.domain.org", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a@b.", false},
		{"", false},
		{"no at sign", false},
		{"spaces in@local.part", false},
		{"a@b c.com", false},
		{"double@@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, IsValidEmail(tt.in), "input %q", tt.in)
		})
	}
}

func TestIsNonEmpty(t *testing.T) {
	t.Parallel()

	require.True(t, IsNonEmpty("x"))
	require.True(t, IsNonEmpty("  x  "))
	require.False(t, IsNonEmpty(""))
	require.False(t, IsNonEmpty("   "))
	require.False(t, IsNonEmpty("\t\n"))
}

func TestValidateForm_AllValid(t *testing.T) {
	t.Parallel()

	res := ValidateForm(map[string]string{
		"email": "a@b.com",
		"name":  "Ada",
	})
	require.True(t, res.IsValid)
	require.Empty(t, res.Errors)
}

func TestValidateForm_BadEmailFormat(t *testing.T) {
	t.Parallel()

	res := ValidateForm(map[string]string{"email": "not-an-email"})
	require.False(t, res.IsValid)
	require.Equal(t, MsgInvalidEmail, res.Errors["email"])
}

func TestValidateForm_RequiredOverridesFormat(t *testing.T) {
	t.Parallel()

	// An empty email fails both checks; the required-field message wins
	// because the non-empty check runs last.
	res := ValidateForm(map[string]string{
		"email": "",
		"name":  "x",
	})
	require.False(t, res.IsValid)
	require.Equal(t, MsgFieldRequired, res.Errors["email"])
	require.NotContains(t, res.Errors, "name")
}

func TestValidateForm_NonEmailFieldOnlyNeedsContent(t *testing.T) {
	t.Parallel()

	res := ValidateForm(map[string]string{
		"name":    "   ",
		"comment": "hi",
	})
	require.False(t, res.IsValid)
	require.Equal(t, MsgFieldRequired, res.Errors["name"])
	require.NotContains(t, res.Errors, "comment")
}

func TestValidateForm_Empty(t *testing.T) {
	t.Parallel()

	res := ValidateForm(nil)
	require.True(t, res.IsValid)
	require.Empty(t, res.Errors)
}
