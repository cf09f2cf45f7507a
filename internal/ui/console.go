package ui

import (
	"fmt"
	"io"
	"strings"
)

// LogLevel controls how chatty the console is
type LogLevel int

const (
	LogLevelQuiet   LogLevel = iota // warnings and failures only
	LogLevelNormal                  // plus info and success lines
	LogLevelVerbose                 // plus debug lines
)

// String returns the flag spelling of the level
func (l LogLevel) String() string {
	switch l {
	case LogLevelQuiet:
		return "quiet"
	case LogLevelVerbose:
		return "verbose"
	default:
		return "normal"
	}
}

// ParseLogLevel maps a level name to a LogLevel, defaulting to normal
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "error", "warn":
		return LogLevelQuiet
	case "verbose", "debug":
		return LogLevelVerbose
	default:
		return LogLevelNormal
	}
}

// Console writes status lines to an output stream
type Console struct {
	out   io.Writer
	level LogLevel
}

// NewConsole creates a console writing to out at the given level
func NewConsole(out io.Writer, level LogLevel) *Console {
	return &Console{out: out, level: level}
}

// Level returns the active log level
func (c *Console) Level() LogLevel {
	return c.level
}

// Writer returns the underlying output stream
func (c *Console) Writer() io.Writer {
	return c.out
}

func (c *Console) Debugf(format string, args ...any) {
	if c.enabled(LogLevelVerbose) {
		c.println(FormatStatusDebug(fmt.Sprintf(format, args...)))
	}
}

func (c *Console) Infof(format string, args ...any) {
	if c.enabled(LogLevelNormal) {
		c.println(FormatStatusInfo(fmt.Sprintf(format, args...)))
	}
}

func (c *Console) OKf(format string, args ...any) {
	if c.enabled(LogLevelNormal) {
		c.println(FormatStatusOK(fmt.Sprintf(format, args...)))
	}
}

// Warnf is always printed
func (c *Console) Warnf(format string, args ...any) {
	c.println(FormatStatusWarn(fmt.Sprintf(format, args...)))
}

// Failf is always printed
func (c *Console) Failf(format string, args ...any) {
	c.println(FormatStatusFail(fmt.Sprintf(format, args...)))
}

// A nil Console discards everything.
func (c *Console) enabled(level LogLevel) bool {
	return c != nil && c.level >= level
}

func (c *Console) println(line string) {
	if c == nil {
		return
	}
	fmt.Fprintln(c.out, line)
}
