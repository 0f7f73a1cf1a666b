package editor

import (
	"reflect"
	"testing"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
	"github.com/inkwell-dev/inkwell/pkg/engine"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f fakeClipboard) ReadText() (string, error) { return f.text, f.err }

type fakePrompter struct {
	answer string
	ok     bool
}

func (f fakePrompter) Prompt(message, fallback string) (string, bool) { return f.answer, f.ok }

type fakeGlobals struct {
	fns map[string]HostFunc
}

func (f fakeGlobals) Lookup(name string) (HostFunc, bool) {
	fn, ok := f.fns[name]
	return fn, ok
}

func TestToolListEnablesExactlyRecognizedTokens(t *testing.T) {
	inst, _ := mountTest(t, "", "bold italic undo redo", Options{})

	want := []string{"bold", "italic", "undo", "redo"}
	if got := inst.Commands().Enabled(); !reflect.DeepEqual(got, want) {
		t.Errorf("Enabled() = %v, want %v", got, want)
	}
}

func TestUnknownTokenYieldsNoControlAndNoError(t *testing.T) {
	inst, _ := mountTest(t, "", "bold frobnicate italic", Options{})

	cs := inst.Commands()
	if cs.IsEnabled("frobnicate") {
		t.Error("unknown token produced a control")
	}
	want := []string{"bold", "italic"}
	if got := cs.Enabled(); !reflect.DeepEqual(got, want) {
		t.Errorf("Enabled() = %v, want %v", got, want)
	}
	// Executing it must be inert, not a panic or error.
	cs.Execute("frobnicate")
}

func TestDuplicateTokensKeepFirstPosition(t *testing.T) {
	inst, _ := mountTest(t, "", "bold italic bold", Options{})
	want := []string{"bold", "italic"}
	if got := inst.Commands().Enabled(); !reflect.DeepEqual(got, want) {
		t.Errorf("Enabled() = %v, want %v", got, want)
	}
}

func TestFormatToggleOnSelectedBlock(t *testing.T) {
	inst, _ := mountTest(t, `<p>plain</p>`, "bold", Options{})
	inst.Engine().SetSelection(engine.Selection{Index: 0, Live: true})

	inst.Commands().Execute("bold")
	run := inst.Engine().Root().Children[0].Children[0]
	if !run.Format.Has(doctree.FormatBold) {
		t.Error("bold toggle did not set the format bit")
	}

	inst.Commands().Execute("bold")
	run = inst.Engine().Root().Children[0].Children[0]
	if run.Format.Has(doctree.FormatBold) {
		t.Error("second toggle did not clear the bit")
	}
}

func TestBlockConversionIsStructuralReplace(t *testing.T) {
	inst, _ := mountTest(t, `<p>title</p>`, "h2", Options{})
	inst.Engine().SetSelection(engine.Selection{Index: 0, Live: true})

	before := inst.Engine().Root().Children[0]
	inst.Commands().Execute("h2")
	after := inst.Engine().Root().Children[0]

	if after == before {
		t.Error("block was patched in place instead of replaced")
	}
	if after.ElemKind != doctree.ElemHeading || after.Level != 2 {
		t.Errorf("converted block = %s level %d", after.ElemKind, after.Level)
	}
	if after.TextContent() != "title" {
		t.Errorf("children lost in conversion: %q", after.TextContent())
	}
}

func TestHorizontalRuleInsertsAtSelection(t *testing.T) {
	inst, _ := mountTest(t, `<p>a</p><p>b</p>`, "hr", Options{})
	inst.Engine().SetSelection(engine.Selection{Index: 1, Live: true})

	inst.Commands().Execute("hr")

	children := inst.Engine().Root().Children
	if len(children) != 3 {
		t.Fatalf("got %d blocks, want 3", len(children))
	}
	if children[1].ElemKind != doctree.ElemHorizontalRule {
		t.Errorf("block 1 = %s, want HorizontalRule", children[1].ElemKind)
	}
}

func TestUndoRedoTokens(t *testing.T) {
	inst, _ := mountTest(t, ``, "undo redo", Options{})
	inst.Engine().Update(func(tx *engine.Tx) {
		tx.Append(doctree.Paragraph(doctree.Text("one")))
	})

	inst.Commands().Execute("undo")
	if got := inst.Engine().Root().TextContent(); got != "" {
		t.Errorf("after undo: %q", got)
	}
	inst.Commands().Execute("redo")
	if got := inst.Engine().Root().TextContent(); got != "one" {
		t.Errorf("after redo: %q", got)
	}
}

func TestPastePlainDenialIsSilent(t *testing.T) {
	inst, _ := mountTest(t, ``, "paste-plain", Options{
		Clipboard: fakeClipboard{err: ErrClipboardDenied},
	})
	inst.Commands().Execute("paste-plain")
	if got := len(inst.Engine().Root().Children); got != 0 {
		t.Errorf("denied paste still edited the tree: %d children", got)
	}
}

func TestPastePlainInsertsClipboardText(t *testing.T) {
	inst, _ := mountTest(t, ``, "paste-plain", Options{
		Clipboard: fakeClipboard{text: "pasted <not html>"},
	})
	inst.Commands().Execute("paste-plain")
	if got := inst.Engine().Root().TextContent(); got != "pasted <not html>" {
		t.Errorf("content = %q", got)
	}
}

func TestTableInsertUsesPrompter(t *testing.T) {
	inst, _ := mountTest(t, ``, "table", Options{
		Prompter: fakePrompter{answer: "2x3", ok: true},
	})
	inst.Commands().Execute("table")

	root := inst.Engine().Root()
	if len(root.Children) != 1 || root.Children[0].ElemKind != doctree.ElemTable {
		t.Fatalf("no table inserted: %+v", root.Children)
	}
	table := root.Children[0]
	if len(table.Children) != 2 || len(table.Children[0].Children) != 3 {
		t.Errorf("table is %dx%d, want 2x3", len(table.Children), len(table.Children[0].Children))
	}
}

func TestTableInsertDismissedPromptIsNoop(t *testing.T) {
	inst, _ := mountTest(t, ``, "table", Options{
		Prompter: fakePrompter{ok: false},
	})
	inst.Commands().Execute("table")
	if got := len(inst.Engine().Root().Children); got != 0 {
		t.Errorf("dismissed prompt still inserted: %d children", got)
	}
}

func TestSpellcheckInvokesHostFunctionVerbatim(t *testing.T) {
	var gotArgs []string
	globals := fakeGlobals{fns: map[string]HostFunc{
		"hostSpell": func(args ...string) { gotArgs = args },
	}}

	cfg := DefaultConfig()
	cfg.Documents = []Document{{ID: "field-1"}}
	cfg.Tools = "spellcheck"
	cfg.Spellcheck = &Spellcheck{FunctionName: "hostSpell", Args: []string{"lang", "en"}}

	inst := Mount(cfg, Options{Globals: globals, Logger: discardLogger()})
	inst.Commands().Execute("spellcheck")

	if !reflect.DeepEqual(gotArgs, []string{"lang", "en"}) {
		t.Errorf("host function got %v", gotArgs)
	}
}

func TestSpellcheckMissingFunctionIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Documents = []Document{{ID: "field-1"}}
	cfg.Tools = "spellcheck"
	cfg.Spellcheck = &Spellcheck{FunctionName: "nope"}

	inst := Mount(cfg, Options{Logger: discardLogger()})
	inst.Commands().Execute("spellcheck") // must not panic
}

func TestReadOnlyInstanceIgnoresEdits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Documents = []Document{{ID: "field-1", Body: "<p>ro</p>"}}
	cfg.Tools = "bold"
	cfg.Editable = false

	inst := Mount(cfg, Options{Logger: discardLogger()})
	inst.Engine().SetSelection(engine.Selection{Index: 0, Live: true})
	inst.Commands().Execute("bold")

	run := inst.Engine().Root().Children[0].Children[0]
	if run.Format.Has(doctree.FormatBold) {
		t.Error("read-only instance accepted a format edit")
	}
}

func TestParseTableSize(t *testing.T) {
	tests := []struct {
		in      string
		rows    int
		cols    int
		wantErr bool
	}{
		{"2x2", 2, 2, false},
		{" 3 X 4 ", 3, 4, false},
		{"0x2", 0, 0, true},
		{"2x999", 0, 0, true},
		{"nonsense", 0, 0, true},
		{"2", 0, 0, true},
	}
	for _, tt := range tests {
		rows, cols, err := parseTableSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTableSize(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && (rows != tt.rows || cols != tt.cols) {
			t.Errorf("parseTableSize(%q) = %dx%d", tt.in, rows, cols)
		}
	}
}
