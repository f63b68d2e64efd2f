package bridge_test

import (
	"testing"

	"github.com/deskbridge/deskbridge/internal/bridge"
	"github.com/deskbridge/deskbridge/internal/signal"
	"github.com/deskbridge/deskbridge/internal/store"
)

func TestEmitter_UnseenCountSuppressedOffline(t *testing.T) {
	online := false
	f := startFixture(t, nil, bridge.WithOnlineCheck(func() bool { return online }))

	f.local.Send(signal.NotifyUnseenCountSet, 4)
	f.store.Dispatch(store.SetUnseenCount{Count: 4})

	if got := f.host.count(signal.UnreadNoticesCount); got != 0 {
		t.Fatalf("Offline pushes must be suppressed entirely, got %d sends", got)
	}

	// Back online: the next update goes through with its payload intact.
	online = true
	f.local.Send(signal.NotifyUnseenCountSet, 5)

	sent := f.host.named(signal.UnreadNoticesCount)
	if len(sent) != 1 || sent[0].Args[0] != 5 {
		t.Errorf("Expected one send with count 5, got %v", sent)
	}
}

func TestEmitter_BootUnseenCount(t *testing.T) {
	t.Run("pushes the cached value once", func(t *testing.T) {
		f := startFixture(t, nil, bridge.WithCachedCount(func() (int, bool) { return 5, true }))

		sent := f.host.named(signal.UnreadNoticesCount)
		if len(sent) != 1 || sent[0].Args[0] != 5 {
			t.Errorf("Expected one boot push with count 5, got %v", sent)
		}
	})

	t.Run("skipped without a cached value", func(t *testing.T) {
		f := startFixture(t, nil)

		if got := f.host.count(signal.UnreadNoticesCount); got != 0 {
			t.Errorf("Expected no boot push, got %d sends", got)
		}
	})

	t.Run("skipped while offline", func(t *testing.T) {
		f := startFixture(t, nil,
			bridge.WithCachedCount(func() (int, bool) { return 5, true }),
			bridge.WithOnlineCheck(func() bool { return false }),
		)

		if got := f.host.count(signal.UnreadNoticesCount); got != 0 {
			t.Errorf("Expected no boot push while offline, got %d sends", got)
		}
	})
}
