package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

var (
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8d8d8d"))
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#78a9ff"))
	levelStyles    = map[string]lipgloss.Style{
		zerolog.LevelTraceValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#8d8d8d")),
		zerolog.LevelDebugValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#3ddbd9")),
		zerolog.LevelInfoValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#4589ff")).Bold(true),
		zerolog.LevelWarnValue:  lipgloss.NewStyle().Foreground(lipgloss.Color("#ff832b")).Bold(true),
		zerolog.LevelErrorValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#da1e28")).Bold(true),
		zerolog.LevelFatalValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true),
		zerolog.LevelPanicValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0000")).Bold(true),
	}
)

var levelAbbrev = map[string]string{
	zerolog.LevelTraceValue: "TRC",
	zerolog.LevelDebugValue: "DBG",
	zerolog.LevelInfoValue:  "INF",
	zerolog.LevelWarnValue:  "WRN",
	zerolog.LevelErrorValue: "ERR",
	zerolog.LevelFatalValue: "FTL",
	zerolog.LevelPanicValue: "PNC",
}

// consoleWriter returns a zerolog console writer. Colors are applied with
// lipgloss when color is set.
func consoleWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	w := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: "15:04:05.000",
	}
	w.FormatLevel = func(i any) string {
		name, _ := i.(string)
		abbrev, ok := levelAbbrev[name]
		if !ok {
			abbrev = strings.ToUpper(name)
		}
		if !color {
			return abbrev
		}
		if st, ok := levelStyles[name]; ok {
			return st.Render(abbrev)
		}
		return abbrev
	}
	if color {
		w.FormatTimestamp = func(i any) string {
			return timestampStyle.Render(fmt.Sprint(i))
		}
		w.FormatFieldName = func(i any) string {
			return keyStyle.Render(fmt.Sprintf("%s=", i))
		}
	}
	return w
}
