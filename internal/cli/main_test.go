package cli

import (
	"os"
	"testing"

	"github.com/agbru/collatz/internal/ui"
)

// TestMain disables colors so that output can be compared verbatim.
func TestMain(m *testing.M) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	os.Exit(m.Run())
}
