package banner

import (
	"nuibench/internal/report"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(report.ColorPrimary).
		Bold(true)

	ascii := `
             _ _                     _
 _ __  _   _(_) |__   ___ _ __   ___| |__
| '_ \| | | | | '_ \ / _ \ '_ \ / __| '_ \
| | | | |_| | | |_) |  __/ | | | (__| | | |
|_| |_|\__,_|_|_.__/ \___|_| |_|\___|_| |_|`

	return "\n" + style.Render(ascii) + "\n"
}
