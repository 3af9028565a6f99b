package ui

// ColorReset returns the escape code that clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color of the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the secondary color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }
