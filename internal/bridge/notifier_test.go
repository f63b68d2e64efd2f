package bridge_test

import (
	"testing"

	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store"
	"github.com/deskbridge/deskbridge/internal/store/memory"
)

func TestNotifier_EditorLoadedEdgesOnly(t *testing.T) {
	f := startFixture(t, nil)

	for _, loaded := range []bool{false, false, true, true, false} {
		f.store.Dispatch(store.SetEditorLoaded{Loaded: loaded})
	}

	sent := f.host.named(signal.EditorLoaded)
	if len(sent) != 2 {
		t.Fatalf("Expected exactly 2 editor-loaded sends, got %d", len(sent))
	}
	if sent[0].Args[0] != true || sent[1].Args[0] != false {
		t.Errorf("Expected a rising then a falling transition, got %v then %v", sent[0].Args[0], sent[1].Args[0])
	}
}

func TestNotifier_EditorLoadedAtStartup(t *testing.T) {
	f := startFixture(t, []memory.Option{memory.WithEditorLoaded(true)})

	sent := f.host.named(signal.EditorLoaded)
	if len(sent) != 1 || sent[0].Args[0] != true {
		t.Fatalf("Expected one immediate editor-loaded true send, got %v", sent)
	}

	// Redundant updates after startup still emit nothing.
	f.store.Dispatch(store.SetEditorLoaded{Loaded: true})
	if f.host.count(signal.EditorLoaded) != 1 {
		t.Error("Re-asserting the loaded state must not re-send")
	}
}

func TestNotifier_UnseenCountEdges(t *testing.T) {
	f := startFixture(t, nil)

	for _, n := range []int{0, 3, 3, 5, 0} {
		f.store.Dispatch(store.SetUnseenCount{Count: n})
	}

	sent := f.host.named(signal.UnreadNoticesCount)
	if len(sent) != 3 {
		t.Fatalf("Expected 3 unseen-count sends, got %d", len(sent))
	}
	for i, want := range []int{3, 5, 0} {
		if sent[i].Args[0] != want {
			t.Errorf("Send %d: expected count %d, got %v", i, want, sent[i].Args[0])
		}
	}
}

func TestNotifier_StopsWithBridge(t *testing.T) {
	f := startFixture(t, nil)
	f.bridge.Stop()

	f.store.Dispatch(store.SetEditorLoaded{Loaded: true})
	f.store.Dispatch(store.SetUnseenCount{Count: 9})

	if f.host.count(signal.EditorLoaded) != 0 || f.host.count(signal.UnreadNoticesCount) != 0 {
		t.Error("A stopped bridge must not react to store changes")
	}
}
