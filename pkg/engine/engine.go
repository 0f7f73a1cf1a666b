// Package engine provides the transactional tree owner the editor core
// sits on: synchronous atomic updates, committed-state notification, and
// an opaque bounded history. Listeners never observe a mid-transaction
// tree; that ordering guarantee is the only one the core relies on.
package engine

import (
	"sync"

	"github.com/inkwell-dev/inkwell/pkg/doctree"
)

// DefaultHistoryLimit bounds the undo stack.
const DefaultHistoryLimit = 100

// Listener observes committed post-transaction state.
type Listener func(root *doctree.Node)

// Selection is the engine's selection record. Index addresses a position
// among the root's children; Live reports a live text-range selection.
type Selection struct {
	Index int
	Live  bool
}

// Engine owns one document tree and serializes all mutation through
// transactions. Transactions mutate a private clone and swap it in at
// commit, so a committed root is never written again: readers may hold
// one across later transactions without synchronization.
type Engine struct {
	mu        sync.Mutex
	root      *doctree.Node
	selection Selection
	history   *history
	listeners map[int]Listener
	nextID    int

	// notifyMu is acquired while mu is still held, so listeners observe
	// commits in commit order. Lock order is always mu then notifyMu.
	notifyMu sync.Mutex
}

// New creates an engine owning an empty root.
func New() *Engine {
	return &Engine{
		root:      doctree.NewRoot(),
		history:   newHistory(DefaultHistoryLimit),
		listeners: make(map[int]Listener),
	}
}

// Root returns the current committed root. Committed roots are never
// mutated after commit; callers may read the returned tree while later
// transactions run.
func (e *Engine) Root() *doctree.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Subscribe registers a committed-transaction listener and returns an
// unsubscribe function.
func (e *Engine) Subscribe(l Listener) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = l
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Update runs one synchronous, atomic transaction. fn mutates a clone
// of the committed tree through the Tx; the previous tree is pushed
// onto the undo stack unchanged, the clone is swapped in at commit, and
// listeners are notified exactly once with the committed root.
func (e *Engine) Update(fn func(*Tx)) {
	e.mu.Lock()
	tx := &Tx{root: e.root.Clone()}
	fn(tx)
	e.history.push(e.root)
	e.root = tx.Root()
	committed := e.root
	listeners := e.snapshotListeners()
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	for _, l := range listeners {
		l(committed)
	}
}

// SetRoot replaces the tree wholesale in its own transaction.
func (e *Engine) SetRoot(root *doctree.Node) {
	e.Update(func(tx *Tx) {
		tx.Replace(root)
	})
}

// Undo restores the previous committed tree, if any.
func (e *Engine) Undo() {
	e.mu.Lock()
	prev, ok := e.history.undoStep(e.root)
	if !ok {
		e.mu.Unlock()
		return
	}
	e.root = prev
	committed := e.root
	listeners := e.snapshotListeners()
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	for _, l := range listeners {
		l(committed)
	}
}

// Redo re-applies the last undone tree, if any.
func (e *Engine) Redo() {
	e.mu.Lock()
	next, ok := e.history.redoStep(e.root)
	if !ok {
		e.mu.Unlock()
		return
	}
	e.root = next
	committed := e.root
	listeners := e.snapshotListeners()
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	for _, l := range listeners {
		l(committed)
	}
}

// SetSelection records the host's selection state.
func (e *Engine) SetSelection(sel Selection) {
	e.mu.Lock()
	e.selection = sel
	e.mu.Unlock()
}

// Selection returns the current selection record.
func (e *Engine) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

func (e *Engine) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(e.listeners))
	for _, l := range e.listeners {
		out = append(out, l)
	}
	return out
}

// Tx is the handle mutations run through. It is valid only for the
// duration of one Update call.
type Tx struct {
	root     *doctree.Node
	replaced *doctree.Node
}

// Root returns the tree being mutated.
func (tx *Tx) Root() *doctree.Node {
	if tx.replaced != nil {
		return tx.replaced
	}
	return tx.root
}

// Replace swaps the whole tree for a new root.
func (tx *Tx) Replace(root *doctree.Node) {
	if root == nil {
		root = doctree.NewRoot()
	}
	tx.replaced = root
}

// ReplaceChildren replaces the root's children wholesale with block
// nodes; the tag identity of existing nodes is never patched in place.
func (tx *Tx) ReplaceChildren(nodes []*doctree.Node) {
	root := doctree.NewRoot()
	root.Append(nodes...)
	tx.replaced = root
}

// Append adds block nodes at the end of the root.
func (tx *Tx) Append(nodes ...*doctree.Node) {
	tx.Root().Append(nodes...)
}

// InsertAt inserts block nodes at the given child index of the root,
// clamping out-of-range indexes.
func (tx *Tx) InsertAt(index int, nodes ...*doctree.Node) {
	root := tx.Root()
	if index < 0 {
		index = 0
	}
	if index > len(root.Children) {
		index = len(root.Children)
	}
	children := make([]*doctree.Node, 0, len(root.Children)+len(nodes))
	children = append(children, root.Children[:index]...)
	for _, n := range nodes {
		if n != nil {
			children = append(children, n)
		}
	}
	children = append(children, root.Children[index:]...)
	root.ReplaceChildren(children)
}

// history is the opaque undo/redo store: bounded stacks of committed
// roots.
type history struct {
	undo  []*doctree.Node
	redo  []*doctree.Node
	limit int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{limit: limit}
}

func (h *history) push(root *doctree.Node) {
	h.undo = append(h.undo, root)
	if len(h.undo) > h.limit {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

func (h *history) undoStep(current *doctree.Node) (*doctree.Node, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prev, true
}

func (h *history) redoStep(current *doctree.Node) (*doctree.Node, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return next, true
}
