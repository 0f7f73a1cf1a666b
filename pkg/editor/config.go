package editor

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// DefaultTools is the tool-token list used when the host supplies none.
const DefaultTools = "bold italic underline strikethrough h1 h2 h3 ul ol quote link undo redo source"

// Document is one host-supplied document descriptor. The first entry of
// a config's list is authoritative for a single-document instance.
type Document struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Body string `json:"body"`
}

// Spellcheck names a host-global function and the arguments to invoke
// it with, verbatim. The core never implements spellcheck logic.
type Spellcheck struct {
	FunctionName string   `json:"functionName"`
	Args         []string `json:"args"`
}

// Config is the per-instance instantiation surface.
type Config struct {
	Container  string
	Documents  []Document
	MinHeight  int
	MaxHeight  int
	Resize     string
	Tools      string
	Editable   bool
	Spellcheck *Spellcheck
}

// DefaultConfig returns the instance defaults.
func DefaultConfig() Config {
	return Config{
		Resize:   "vertical",
		Tools:    DefaultTools,
		Editable: true,
	}
}

// FieldID returns the host field the instance binds to: the first
// document's id.
func (c Config) FieldID() string {
	if len(c.Documents) == 0 {
		return ""
	}
	return c.Documents[0].ID
}

// ParseConfig builds a Config from a string attribute map. Every
// malformed parameter falls back to its default and is logged; a bad
// attribute never fails the whole instance.
func ParseConfig(attrs map[string]string, logger *slog.Logger) Config {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := DefaultConfig()

	if v, ok := attrs["container"]; ok {
		cfg.Container = v
	}
	if v, ok := attrs["documents"]; ok {
		var docs []Document
		if err := json.Unmarshal([]byte(EscapeControlChars(v)), &docs); err != nil {
			logger.Warn("config: bad documents attribute, using empty list", "error", err)
		} else {
			cfg.Documents = docs
		}
	}
	if v, ok := attrs["minHeight"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			logger.Warn("config: bad minHeight attribute", "value", v, "error", err)
		} else {
			cfg.MinHeight = n
		}
	}
	if v, ok := attrs["maxHeight"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil {
			logger.Warn("config: bad maxHeight attribute", "value", v, "error", err)
		} else {
			cfg.MaxHeight = n
		}
	}
	if v, ok := attrs["resize"]; ok {
		cfg.Resize = v
	}
	if v, ok := attrs["tools"]; ok {
		cfg.Tools = v
	}
	if v, ok := attrs["editable"]; ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
			logger.Warn("config: bad editable attribute", "value", v, "error", err)
		} else {
			cfg.Editable = b
		}
	}
	if v, ok := attrs["spellcheck"]; ok {
		var sc Spellcheck
		if err := json.Unmarshal([]byte(EscapeControlChars(v)), &sc); err != nil {
			logger.Warn("config: bad spellcheck attribute, hook disabled", "error", err)
		} else if sc.FunctionName != "" {
			cfg.Spellcheck = &sc
		}
	}

	return cfg
}

// EscapeControlChars escapes raw newline, carriage-return and tab bytes
// inside JSON string literals. Content that originated in a database
// commonly arrives with unescaped control characters; rejecting the
// whole parameter for them is not an option.
func EscapeControlChars(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))

	inString := false
	escaped := false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			case ch == '\n':
				sb.WriteString(`\n`)
				continue
			case ch == '\r':
				sb.WriteString(`\r`)
				continue
			case ch == '\t':
				sb.WriteString(`\t`)
				continue
			}
		} else if ch == '"' {
			inString = true
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}
