package intro

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/phonassess/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗  ██╗ ██████╗ ███╗   ██╗
 ██╔══██╗██║  ██║██╔═══██╗████╗  ██║
 ██████╔╝███████║██║   ██║██╔██╗ ██║
 ██╔═══╝ ██╔══██║██║   ██║██║╚██╗██║
 ██║     ██║  ██║╚██████╔╝██║ ╚████║
 ╚═╝     ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝`

const bannerCompact = "P H O N"

// RenderBanner returns the banner in the primary color, or a compact form
// for terminals narrower than 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
