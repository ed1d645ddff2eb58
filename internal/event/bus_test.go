package event

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBus_SingleProducerOrder(t *testing.T) {
	b := NewBus(4)
	ctx := context.Background()

	go func() {
		for i := 0; i < 100; i++ {
			b.Send(ctx, ProcessOutput{Data: []byte{byte(i)}})
		}
	}()

	for i := 0; i < 100; i++ {
		ev := <-b.Events()
		out, ok := ev.(ProcessOutput)
		if !ok {
			t.Fatalf("event %d = %T, want ProcessOutput", i, ev)
		}
		if int(out.Data[0]) != i {
			t.Fatalf("event %d carries %d", i, out.Data[0])
		}
	}
}

func TestBus_ProducersKeepRelativeOrder(t *testing.T) {
	b := NewBus(8)
	ctx := context.Background()
	const n = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			b.Send(ctx, ProcessOutput{Data: []byte{byte(i)}})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			b.Send(ctx, Key{Code: KeyRune, Rune: rune(i)})
		}
	}()

	nextOut, nextKey := 0, 0
	for nextOut < n || nextKey < n {
		switch ev := (<-b.Events()).(type) {
		case ProcessOutput:
			if int(ev.Data[0]) != nextOut%256 {
				t.Fatalf("output %d arrived out of order", ev.Data[0])
			}
			nextOut++
		case Key:
			if int(ev.Rune) != nextKey {
				t.Fatalf("key %d arrived before %d", ev.Rune, nextKey)
			}
			nextKey++
		}
	}
	wg.Wait()
}

func TestBus_SendStopsOnCancel(t *testing.T) {
	b := NewBus(1)
	ctx, cancel := context.WithCancel(context.Background())
	if !b.Send(ctx, Tick{}) {
		t.Fatal("first Send() = false")
	}

	done := make(chan bool)
	go func() { done <- b.Send(ctx, Tick{}) }()
	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Error("Send() on full bus after cancel = true, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("Send() did not return after cancel")
	}
}

func TestBus_TrySend(t *testing.T) {
	b := NewBus(1)
	if !b.TrySend(Tick{}) {
		t.Fatal("TrySend() on empty bus = false")
	}
	if b.TrySend(Tick{}) {
		t.Error("TrySend() on full bus = true")
	}
}

func TestTicker(t *testing.T) {
	b := NewBus(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Ticker(ctx, b, 10*time.Millisecond)

	select {
	case ev := <-b.Events():
		if _, ok := ev.(Tick); !ok {
			t.Errorf("event = %T, want Tick", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no tick")
	}
}

func TestKey_String(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Char('j'), "j"},
		{Char('S'), "S"},
		{Char(' '), "space"},
		{Ctrl('q'), "ctrl+q"},
		{Ctrl('\\'), "ctrl+\\"},
		{Named(KeyEnter), "enter"},
		{Named(KeyF5), "f5"},
		{Key{Code: KeyRune, Rune: 'x', Alt: true}, "alt+x"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if names["f12"] != KeyF12 {
		t.Errorf("f12 = %v, want KeyF12", names["f12"])
	}
	if names["esc"] != KeyEsc {
		t.Errorf("esc = %v, want KeyEsc", names["esc"])
	}
}
