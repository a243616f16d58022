// Package render draws feature views for the terminal
package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color modes accepted by New
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Orange
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorBorder    = lipgloss.Color("#374151") // Gray border
)

// Glyphs for the icon names carried by the views
var glyphs = map[string]string{
	"check_circle":    "✔",
	"cancel":          "✖",
	"flag":            "⚑",
	"report_problem":  "⚠",
	"add_circle":      "+",
	"hourglass_empty": "…",
	"block":           "⊘",
}

// Glyph returns the terminal glyph for an icon name, "•" when unknown
func Glyph(icon string) string {
	if g, ok := glyphs[icon]; ok {
		return g
	}
	return "•"
}

// Renderer holds the styles bound to one output
type Renderer struct {
	r *lipgloss.Renderer

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Badge    lipgloss.Style
}

// New creates a renderer for w. In auto mode colors are used only when w
// is a terminal.
func New(w io.Writer, mode string) *Renderer {
	r := lipgloss.NewRenderer(w)
	if !UseColor(w, mode) {
		r.SetColorProfile(termenv.Ascii)
	} else if strings.EqualFold(mode, ColorAlways) && r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Renderer{
		r:        r,
		Title:    r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Subtitle: r.NewStyle().Foreground(ColorSecondary),
		Muted:    r.NewStyle().Foreground(ColorMuted),
		Success:  r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Error:    r.NewStyle().Foreground(ColorError).Bold(true),
		Header:   r.NewStyle().Bold(true).Foreground(ColorSecondary).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Badge:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9FAFB")).Background(ColorError).Padding(0, 1),
	}
}

// UseColor resolves a color mode against w
func UseColor(w io.Writer, mode string) bool {
	switch strings.ToLower(mode) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colored reports whether the renderer emits styling
func (rd *Renderer) Colored() bool {
	return rd.r.ColorProfile() != termenv.Ascii
}

// statusStyle picks the style of a quality or access status
func (rd *Renderer) statusStyle(status string) lipgloss.Style {
	switch strings.ToUpper(status) {
	case "OK", "ACTIVE":
		return rd.Success
	case "NOK", "MISSING":
		return rd.Error
	case "FLAG", "PENDING":
		return rd.Warning
	default:
		return rd.Muted
	}
}

// Status renders a status word with its icon
func (rd *Renderer) Status(icon, status string) string {
	if status == "" {
		status = "UNKNOWN"
	}
	return rd.statusStyle(status).Render(Glyph(icon) + " " + status)
}
