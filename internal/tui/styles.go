package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorBlue     = lipgloss.Color("#2563EB")
	ColorGray     = lipgloss.Color("#6B7280")
	ColorDarkGray = lipgloss.Color("#374151")
	ColorWhite    = lipgloss.Color("#F9FAFB")
	ColorGreen    = lipgloss.Color("#15803D")
	ColorRed      = lipgloss.Color("#B91C1C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBlue).
			Padding(0, 1)

	suffixStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorBlue).
			Padding(0, 2).
			MarginLeft(1)

	buttonDisabledStyle = buttonStyle.
				Background(ColorDarkGray).
				Foreground(ColorGray)

	bannerBase = lipgloss.NewStyle().
			Padding(0, 1).
			MarginTop(1).
			Border(lipgloss.NormalBorder(), false, false, false, true)

	errorBannerStyle = bannerBase.
				BorderForeground(ColorRed).
				Foreground(ColorRed)

	availableBannerStyle = bannerBase.
				BorderForeground(ColorGreen).
				Foreground(ColorGreen)

	takenBannerStyle = bannerBase.
				BorderForeground(ColorRed).
				Foreground(ColorRed)

	footerStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			MarginTop(1)
)
