package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ProfileFromEnv picks a color profile from NO_COLOR, CLICOLOR_FORCE and
// COLORTERM. ok is false when none of them is set and detection should be
// left to lipgloss.
func ProfileFromEnv(getenv func(string) string) (profile termenv.Profile, ok bool) {
	switch {
	case getenv("NO_COLOR") != "":
		return termenv.Ascii, true
	case getenv("CLICOLOR_FORCE") == "1", getenv("COLORTERM") == "truecolor":
		return termenv.TrueColor, true
	}
	return termenv.Ascii, false
}

// InitColor applies ProfileFromEnv to lipgloss. Call it before rendering.
func InitColor() {
	if profile, ok := ProfileFromEnv(os.Getenv); ok {
		lipgloss.SetColorProfile(profile)
	}
}
