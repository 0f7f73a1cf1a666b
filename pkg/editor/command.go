package editor

import (
	"strconv"
	"strings"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
	"github.com/inkwell-dev/inkwell/pkg/engine"
)

// recognizedTokens is the closed set of tool tokens the surface knows.
// Anything else in a tool list is ignored: no control, no error.
var recognizedTokens = map[string]struct{}{
	"bold": {}, "italic": {}, "underline": {}, "strikethrough": {},
	"subscript": {}, "superscript": {}, "code": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"paragraph": {}, "quote": {}, "address": {}, "pre": {}, "div": {},
	"ul": {}, "ol": {}, "check": {},
	"link": {}, "table": {}, "hr": {},
	"undo": {}, "redo": {},
	"source": {}, "paste-plain": {}, "spellcheck": {},
}

// CommandSurface maps the instance's ordered tool tokens to engine
// commands and local handlers.
type CommandSurface struct {
	inst       *Instance
	enabled    []string
	enabledSet map[string]struct{}

	clipboard  Clipboard
	prompter   Prompter
	globals    HostGlobals
	spellcheck *Spellcheck
}

func newCommandSurface(inst *Instance, cfg Config, opts Options) *CommandSurface {
	cs := &CommandSurface{
		inst:       inst,
		enabledSet: make(map[string]struct{}),
		clipboard:  opts.Clipboard,
		prompter:   opts.Prompter,
		globals:    opts.Globals,
		spellcheck: cfg.Spellcheck,
	}
	if cs.clipboard == nil {
		cs.clipboard = deniedClipboard{}
	}
	if cs.prompter == nil {
		cs.prompter = silentPrompter{}
	}
	if cs.globals == nil {
		cs.globals = emptyGlobals{}
	}

	for _, token := range strings.Fields(cfg.Tools) {
		if _, known := recognizedTokens[token]; !known {
			continue
		}
		if _, dup := cs.enabledSet[token]; dup {
			continue
		}
		cs.enabledSet[token] = struct{}{}
		cs.enabled = append(cs.enabled, token)
	}
	return cs
}

// Enabled returns the ordered enabled token list.
func (cs *CommandSurface) Enabled() []string {
	out := make([]string, len(cs.enabled))
	copy(out, cs.enabled)
	return out
}

// IsEnabled reports whether a token produced a control.
func (cs *CommandSurface) IsEnabled(token string) bool {
	_, ok := cs.enabledSet[token]
	return ok
}

// Execute dispatches one enabled command. Disabled or unknown tokens
// and read-only instances are log-and-no-op; nothing here errors out to
// the host.
func (cs *CommandSurface) Execute(token string) {
	if !cs.IsEnabled(token) {
		cs.inst.logger.Debug("command: token not enabled", "id", cs.inst.id, "token", token)
		return
	}
	if !cs.inst.editable && token != "source" {
		cs.inst.logger.Debug("command: instance is read-only", "id", cs.inst.id, "token", token)
		return
	}

	switch token {
	case "bold":
		cs.toggleFormat(doctree.FormatBold)
	case "italic":
		cs.toggleFormat(doctree.FormatItalic)
	case "underline":
		cs.toggleFormat(doctree.FormatUnderline)
	case "strikethrough":
		cs.toggleFormat(doctree.FormatStrikethrough)
	case "subscript":
		cs.toggleFormat(doctree.FormatSubscript)
	case "superscript":
		cs.toggleFormat(doctree.FormatSuperscript)
	case "code":
		cs.toggleFormat(doctree.FormatCode)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level, _ := strconv.Atoi(token[1:])
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Heading(level, old.Children...)
		})
	case "paragraph":
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Paragraph(old.Children...)
		})
	case "quote":
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Quote(old.Children...)
		})
	case "address":
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Address(old.Children...)
		})
	case "pre":
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Preformatted(old.Children...)
		})
	case "div":
		cs.convertBlock(func(old *doctree.Node) *doctree.Node {
			return doctree.Div(old.Children...)
		})
	case "ul":
		cs.wrapInList(doctree.ListUnordered)
	case "ol":
		cs.wrapInList(doctree.ListOrdered)
	case "check":
		cs.wrapInList(doctree.ListCheck)
	case "link":
		cs.insertLink()
	case "table":
		cs.insertTable()
	case "hr":
		cs.inst.InsertNodes([]*doctree.Node{doctree.HorizontalRule()})
	case "undo":
		cs.inst.engine.Undo()
	case "redo":
		cs.inst.engine.Redo()
	case "source":
		cs.toggleSource()
	case "paste-plain":
		cs.pastePlain()
	case "spellcheck":
		cs.runSpellcheck()
	}
}

// selectedBlock returns the index of the live-selected root child, or
// false when no live selection exists.
func (cs *CommandSurface) selectedBlock() (int, bool) {
	sel := cs.inst.engine.Selection()
	if !sel.Live {
		return 0, false
	}
	root := cs.inst.engine.Root()
	if sel.Index < 0 || sel.Index >= len(root.Children) {
		return 0, false
	}
	return sel.Index, true
}

// toggleFormat flips format bits on every text run of the selected
// block.
func (cs *CommandSurface) toggleFormat(flag doctree.Format) {
	idx, ok := cs.selectedBlock()
	if !ok {
		cs.inst.logger.Debug("command: no live selection for format toggle", "id", cs.inst.id)
		return
	}
	cs.inst.engine.Update(func(tx *engine.Tx) {
		toggleTextFormat(tx.Root().Children[idx], flag)
	})
}

func toggleTextFormat(n *doctree.Node, flag doctree.Format) {
	if n.Kind == doctree.KindText {
		n.Format = n.Format.Toggle(flag)
		return
	}
	for _, c := range n.Children {
		toggleTextFormat(c, flag)
	}
}

// convertBlock swaps the selected block for a freshly constructed node
// carrying the same children. Tags are fixed at construction, so a
// block change is always a structural replace, never retagging.
func (cs *CommandSurface) convertBlock(build func(old *doctree.Node) *doctree.Node) {
	idx, ok := cs.selectedBlock()
	if !ok {
		cs.inst.logger.Debug("command: no live selection for block conversion", "id", cs.inst.id)
		return
	}
	cs.inst.engine.Update(func(tx *engine.Tx) {
		root := tx.Root()
		root.Children[idx] = build(root.Children[idx])
	})
}

// wrapInList turns the selected block into a single-item list.
func (cs *CommandSurface) wrapInList(kind doctree.ListKind) {
	cs.convertBlock(func(old *doctree.Node) *doctree.Node {
		return doctree.List(kind, doctree.ListItem(old.Children...))
	})
}

// insertLink prompts for a destination and inserts a link paragraph.
func (cs *CommandSurface) insertLink() {
	url, ok := cs.prompter.Prompt("Link URL", "https://")
	if !ok || url == "" {
		return
	}
	cs.inst.InsertNodes([]*doctree.Node{
		doctree.Paragraph(doctree.Link(url, doctree.Text(url))),
	})
}

// insertTable prompts for dimensions like "2x3" and inserts an empty
// table. The prompt suspends only the calling interaction.
func (cs *CommandSurface) insertTable() {
	answer, ok := cs.prompter.Prompt("Table size (rows x columns)", "2x2")
	if !ok {
		return
	}
	rows, cols, err := parseTableSize(answer)
	if err != nil {
		cs.inst.logger.Debug("command: bad table size", "id", cs.inst.id, "input", answer)
		return
	}
	table := doctree.Table()
	for r := 0; r < rows; r++ {
		row := doctree.TableRow()
		for c := 0; c < cols; c++ {
			row.Append(doctree.TableCell())
		}
		table.Append(row)
	}
	cs.inst.InsertNodes([]*doctree.Node{table})
}

// parseTableSize parses "RxC" with a hard cap against runaway input.
func parseTableSize(s string) (rows, cols int, err error) {
	left, right, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, strconv.ErrSyntax
	}
	rows, err = strconv.Atoi(strings.TrimSpace(left))
	if err != nil {
		return 0, 0, err
	}
	cols, err = strconv.Atoi(strings.TrimSpace(right))
	if err != nil {
		return 0, 0, err
	}
	if rows < 1 || cols < 1 || rows > 50 || cols > 50 {
		return 0, 0, strconv.ErrRange
	}
	return rows, cols, nil
}

// toggleSource flips the source view.
func (cs *CommandSurface) toggleSource() {
	if cs.inst.source.State() == StateSource {
		cs.inst.source.Cancel()
		return
	}
	if _, err := cs.inst.source.Enter(); err != nil {
		cs.inst.logger.Warn("command: entering source view failed", "id", cs.inst.id, "error", err)
	}
}

// pastePlain reads the clipboard and inserts its text as a plain
// paragraph. Fire-and-forget: a denied read means the edit silently
// does not occur.
func (cs *CommandSurface) pastePlain() {
	text, err := cs.clipboard.ReadText()
	if err != nil || text == "" {
		return
	}
	cs.inst.InsertNodes([]*doctree.Node{doctree.Paragraph(doctree.Text(text))})
}

// runSpellcheck invokes the configured host-global function with its
// arguments, verbatim. Spellcheck logic lives entirely in the host.
func (cs *CommandSurface) runSpellcheck() {
	if cs.spellcheck == nil {
		cs.inst.logger.Debug("command: no spellcheck descriptor", "id", cs.inst.id)
		return
	}
	fn, ok := cs.globals.Lookup(cs.spellcheck.FunctionName)
	if !ok {
		cs.inst.logger.Warn("command: spellcheck function not found",
			"id", cs.inst.id, "function", cs.spellcheck.FunctionName)
		return
	}
	fn(cs.spellcheck.Args...)
}
