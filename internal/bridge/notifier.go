package bridge

import (
	"sync"

	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/store"
)

// notifier watches derived store values and pushes a command only on
// observed transitions (strict inequality against the previously computed
// value), so the host is never re-told what it already knows.
type notifier struct {
	store store.Store
	sel   Selectors
	emit  *emitter
	log   *logging.Logger

	mu           sync.Mutex
	editorLoaded bool
	unseenCount  int

	cancel func()
}

func newNotifier(st store.Store, sel Selectors, emit *emitter, log *logging.Logger) *notifier {
	return &notifier{
		store: st,
		sel:   sel,
		emit:  emit,
		log:   log.WithComponent("notifier"),
	}
}

// start snapshots the current derived values and subscribes to the store.
// When the editor is already ready at startup there is no transition to
// observe, so the startup state counts as an edge and is pushed once
// immediately. The unseen count gets no such treatment here; its boot push
// is an explicit, separate trigger in bridge startup.
func (n *notifier) start() {
	state := n.store.State()

	n.mu.Lock()
	n.editorLoaded = n.sel.EditorLoaded(state)
	n.unseenCount = n.sel.UnseenCount(state)
	loadedAtStart := n.editorLoaded
	n.mu.Unlock()

	if loadedAtStart {
		n.log.Debug("editor already loaded at startup")
		n.emit.sendEditorLoadedStatus(true)
	}

	n.cancel = n.store.Subscribe(n.onStoreChange)
}

func (n *notifier) stop() {
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
}

func (n *notifier) onStoreChange() {
	state := n.store.State()
	loaded := n.sel.EditorLoaded(state)
	unseen := n.sel.UnseenCount(state)

	n.mu.Lock()
	editorEdge := loaded != n.editorLoaded
	unseenEdge := unseen != n.unseenCount
	n.editorLoaded = loaded
	n.unseenCount = unseen
	n.mu.Unlock()

	if editorEdge {
		n.emit.sendEditorLoadedStatus(loaded)
	}
	if unseenEdge {
		n.emit.sendUnseenCount(unseen)
	}
}
