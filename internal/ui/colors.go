package ui

// Color accessors read the active theme on every call so that a theme change
// takes effect immediately.

// ColorReset returns the code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorPrimary returns the accent color of the result line.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorDim returns the color of secondary lines.
func ColorDim() string { return GetCurrentTheme().Secondary }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// Paint wraps s in color and a reset. With NoColorTheme active it returns s
// unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}
