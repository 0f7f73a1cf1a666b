// Package editor ties one host field to one document tree: it mounts
// instances, mirrors committed edits into the field, runs the source
// view toggle with its raw override store, and maps tool tokens to
// commands. Browser-global I/O (clipboard, prompts, host functions) is
// injected through capability interfaces.
package editor

import (
	"log/slog"

	"github.com/inkwell-dev/inkwell/pkg/bridge"
	"github.com/inkwell-dev/inkwell/pkg/doctree"
	"github.com/inkwell-dev/inkwell/pkg/engine"
)

// Options supplies the collaborators an instance needs. Zero-value
// fields get working defaults: the built-in bridge, a sink with only
// the instance's own field, and inert browser capabilities.
type Options struct {
	Converter Converter
	Sink      FieldSink
	Clipboard Clipboard
	Prompter  Prompter
	Globals   HostGlobals
	Overrides *OverrideStore
	Logger    *slog.Logger
}

// Instance is one mounted editor bound to a host field.
type Instance struct {
	id       string
	editable bool

	engine *engine.Engine
	conv   Converter
	sink   FieldSink
	logger *slog.Logger

	sync     *SyncBridge
	source   *SourceView
	commands *CommandSurface
}

// Mount creates an instance from its config, imports the first
// document's body, and starts mirroring committed transactions into the
// host field.
func Mount(cfg Config, opts Options) *Instance {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	conv := opts.Converter
	if conv == nil {
		conv = bridge.New(nil)
	}
	id := cfg.FieldID()
	sink := opts.Sink
	if sink == nil {
		sink = NewMemorySink(id)
	}
	overrides := opts.Overrides
	if overrides == nil {
		overrides = NewOverrideStore()
	}

	inst := &Instance{
		id:       id,
		editable: cfg.Editable,
		engine:   engine.New(),
		conv:     conv,
		sink:     sink,
		logger:   logger,
	}
	inst.sync = newSyncBridge(inst)
	inst.source = newSourceView(inst, overrides)
	inst.commands = newCommandSurface(inst, cfg, opts)

	if len(cfg.Documents) > 0 && cfg.Documents[0].Body != "" {
		if err := inst.SetContent(cfg.Documents[0].Body); err != nil {
			logger.Warn("editor: initial document body did not parse, starting empty",
				"id", id, "error", err)
		}
	}
	return inst
}

// ID returns the host field id the instance is bound to.
func (i *Instance) ID() string { return i.id }

// Editable reports whether the instance accepts edits.
func (i *Instance) Editable() bool { return i.editable }

// SetEditable flips the editable flag.
func (i *Instance) SetEditable(editable bool) { i.editable = editable }

// Engine returns the instance's tree owner.
func (i *Instance) Engine() *engine.Engine { return i.engine }

// Commands returns the instance's command surface.
func (i *Instance) Commands() *CommandSurface { return i.commands }

// Source returns the instance's source-view toggle.
func (i *Instance) Source() *SourceView { return i.source }

// SetContent replaces the tree wholesale with the import of src.
func (i *Instance) SetContent(src string) error {
	nodes, err := i.conv.Import(src)
	if err != nil {
		return err
	}
	i.engine.Update(func(tx *engine.Tx) {
		tx.ReplaceChildren(nodes)
	})
	return nil
}

// ImportNodes converts HTML through the instance's bridge without
// touching the tree.
func (i *Instance) ImportNodes(src string) ([]*doctree.Node, error) {
	return i.conv.Import(src)
}

// Export serializes the current tree through the bridge.
func (i *Instance) Export() (string, error) {
	root := i.engine.Root()
	return i.conv.Export(root.Children)
}

// InsertNodes places block nodes at the live selection when there is
// one, otherwise appends them at the end of the root.
func (i *Instance) InsertNodes(nodes []*doctree.Node) {
	sel := i.engine.Selection()
	i.engine.Update(func(tx *engine.Tx) {
		if sel.Live {
			tx.InsertAt(sel.Index, nodes...)
		} else {
			tx.Append(nodes...)
		}
	})
}

// Unmount stops the field mirror. The page-wide registry entry is
// removed by the registry, not here.
func (i *Instance) Unmount() {
	i.sync.stop()
}
