package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key help and the run status.
type FooterModel struct {
	help     help.Model
	keymap   KeyMap
	paused   bool
	done     bool
	hasError bool
	width    int
}

// NewFooterModel creates a footer for keymap.
func NewFooterModel(keymap KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = titleStyle
	h.Styles.ShortDesc = versionStyle
	h.Styles.FullKey = titleStyle
	h.Styles.FullDesc = versionStyle
	return FooterModel{help: h, keymap: keymap}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the finished indicator.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError toggles the error indicator.
func (f *FooterModel) SetError(e bool) { f.hasError = e }

// ToggleHelp switches between the short and the full key help.
func (f *FooterModel) ToggleHelp() { f.help.ShowAll = !f.help.ShowAll }

// Height returns the number of lines the footer renders.
func (f FooterModel) Height() int {
	return lipgloss.Height(f.View())
}

func (f FooterModel) status() string {
	switch {
	case f.hasError:
		return statusErrorStyle.Render("● ERROR")
	case f.done:
		return statusDoneStyle.Render("● DONE")
	case f.paused:
		return statusPausedStyle.Render("● PAUSED")
	default:
		return statusRunningStyle.Render("● RUNNING")
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	status := f.status()
	keys := f.help.View(f.keymap)
	gap := f.width - lipgloss.Width(status) - lipgloss.Width(keys) - 2
	if f.help.ShowAll || gap < 1 {
		return lipgloss.JoinVertical(lipgloss.Left, " "+keys, " "+status)
	}
	return " " + keys + strings.Repeat(" ", gap) + status + " "
}
