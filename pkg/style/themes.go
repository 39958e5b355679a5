package style

import (
	"github.com/charmbracelet/lipgloss"
)

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette used by the reporter. Each color switches with the terminal background.
var (
	PrimaryColor   = adaptive("#007ACC", "#3D9EFF")
	SecondaryColor = adaptive("#5A6470", "#A0A8B0")
	HeadingColor   = adaptive("#212529", "#F8F9FA")
	MutedColor     = adaptive("#6C757D", "#ADB5BD")

	// Outcomes
	SuccessColor = adaptive("#1E8E3E", "#4CDD76")
	ErrorColor   = adaptive("#C5221F", "#FF6B7D")
	WarningColor = adaptive("#B06000", "#FFD54F")
	InfoColor    = adaptive("#12839A", "#4DD0E1")

	// Placements and hooks
	LinkColor    = adaptive("#0284C7", "#38BDF8")
	CommandColor = adaptive("#D97706", "#FBBF24")
)
