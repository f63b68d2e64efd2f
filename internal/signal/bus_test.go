package signal

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	cancel := bus.Subscribe("test.signal", func(s Signal) {
		called = true
	})

	if cancel == nil {
		t.Fatal("Subscribe should return a cancel func")
	}

	if bus.SubscriptionCount() != 1 {
		t.Errorf("Expected 1 subscription, got %d", bus.SubscriptionCount())
	}

	if called {
		t.Error("Handler should not be called until a signal is sent")
	}
}

func TestBus_Send(t *testing.T) {
	bus := NewBus()

	var received Signal
	bus.Subscribe("request-site", func(s Signal) {
		received = s
	})

	bus.Send("request-site", int64(42))

	if received.Name != "request-site" {
		t.Errorf("Expected signal name 'request-site', got %q", received.Name)
	}
	if len(received.Args) != 1 || received.Args[0] != int64(42) {
		t.Errorf("Expected args [42], got %v", received.Args)
	}
}

func TestBus_SendMultipleHandlersInOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe("test.signal", func(s Signal) {
		order = append(order, 1)
	})
	bus.Subscribe("test.signal", func(s Signal) {
		order = append(order, 2)
	})

	bus.Send("test.signal")

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Expected handlers in registration order [1 2], got %v", order)
	}
}

func TestBus_SendNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("other.signal", func(s Signal) {
		t.Error("Handler should not be called for a non-matching name")
	})

	// This should not panic or call the handler
	bus.Send("test.signal")
}

func TestBus_Wildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("navigate", func(s Signal) {
		order = append(order, "specific")
	})
	bus.Subscribe(Any, func(s Signal) {
		order = append(order, "wildcard:"+s.Name)
	})

	bus.Send("navigate", "/read")
	bus.Send("signout")

	want := []string{"specific", "wildcard:navigate", "wildcard:signout"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d deliveries, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Delivery %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestBus_Cancel(t *testing.T) {
	bus := NewBus()

	count := 0
	cancel := bus.Subscribe("test.signal", func(s Signal) {
		count++
	})

	bus.Send("test.signal")
	cancel()
	bus.Send("test.signal")

	if count != 1 {
		t.Errorf("Expected 1 call after cancel, got %d", count)
	}

	// Cancelling twice must be safe.
	cancel()
}

func TestBus_SubscribeOnce(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.SubscribeOnce("response", func(s Signal) {
		count++
	})

	bus.Send("response")
	bus.Send("response")
	bus.Send("response")

	if count != 1 {
		t.Errorf("Expected exactly 1 call for a one-shot handler, got %d", count)
	}
	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected one-shot subscription to be retired, got %d remaining", bus.SubscriptionCount())
	}
}

func TestBus_SubscribeOnceConcurrent(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.SubscribeOnce("response", func(s Signal) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Send("response")
		}()
	}
	wg.Wait()

	if count != 1 {
		t.Errorf("Expected exactly 1 call under concurrent sends, got %d", count)
	}
}

func TestBus_SubscribeOnceCancelBeforeFiring(t *testing.T) {
	bus := NewBus()

	cancel := bus.SubscribeOnce("response", func(s Signal) {
		t.Error("Cancelled one-shot handler should not fire")
	})
	cancel()

	bus.Send("response")
}

func TestBus_HandlerPanicRecovered(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe("test.signal", func(s Signal) {
		panic("handler failure")
	})
	bus.Subscribe("test.signal", func(s Signal) {
		called = true
	})

	bus.Send("test.signal")

	if !called {
		t.Error("A panicking handler should not block delivery to later handlers")
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("a", func(s Signal) {})
	bus.Subscribe("b", func(s Signal) {})
	bus.Clear()

	if bus.SubscriptionCount() != 0 {
		t.Errorf("Expected 0 subscriptions after Clear, got %d", bus.SubscriptionCount())
	}
}

func TestBus_ConcurrentSubscribeAndSend(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cancel := bus.Subscribe("test.signal", func(s Signal) {})
			cancel()
		}()
		go func() {
			defer wg.Done()
			bus.Send("test.signal")
		}()
	}
	wg.Wait()
}
