package core

import "testing"

type listener struct {
	name string
}

func TestEventBusFireInRegistrationOrder(t *testing.T) {
	bus := NewEventBus()
	var order []string
	record := func(code SystemEventCode, sender, l interface{}, ctx EventContext) bool {
		order = append(order, l.(*listener).name)
		return false
	}

	a, b := &listener{"a"}, &listener{"b"}
	bus.Register(EVENT_CODE_RESIZED, a, record)
	bus.Register(EVENT_CODE_RESIZED, b, record)

	if handled := bus.Fire(EVENT_CODE_RESIZED, nil, EventContext{}); handled {
		t.Fatal("Fire reported handled although no listener returned true")
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("delivery order = %v, want [a b]", order)
	}
}

func TestEventBusHandledStopsPropagation(t *testing.T) {
	bus := NewEventBus()
	var second bool
	bus.Register(EVENT_CODE_APPLICATION_QUIT, &listener{"first"}, func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		return true
	})
	bus.Register(EVENT_CODE_APPLICATION_QUIT, &listener{"second"}, func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		second = true
		return false
	})

	if !bus.Fire(EVENT_CODE_APPLICATION_QUIT, nil, EventContext{}) {
		t.Fatal("Fire should report handled")
	}
	if second {
		t.Fatal("event delivered past a handling listener")
	}
}

func TestEventBusDuplicateListener(t *testing.T) {
	SetLogLevel(ErrorLevel)
	defer SetLogLevel(DebugLevel)

	bus := NewEventBus()
	l := &listener{"dup"}
	noop := func(SystemEventCode, interface{}, interface{}, EventContext) bool { return false }

	if !bus.Register(EVENT_CODE_KEY_PRESSED, l, noop) {
		t.Fatal("first Register failed")
	}
	if bus.Register(EVENT_CODE_KEY_PRESSED, l, noop) {
		t.Fatal("duplicate Register succeeded")
	}
	// The same listener may still listen on another code.
	if !bus.Register(EVENT_CODE_KEY_RELEASED, l, noop) {
		t.Fatal("Register on a second code failed")
	}
}

func TestEventBusUnregister(t *testing.T) {
	bus := NewEventBus()
	var calls int
	l := &listener{"x"}
	bus.Register(EVENT_CODE_MOUSE_MOVED, l, func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		calls++
		return false
	})

	if !bus.Unregister(EVENT_CODE_MOUSE_MOVED, l) {
		t.Fatal("Unregister failed")
	}
	if bus.Unregister(EVENT_CODE_MOUSE_MOVED, l) {
		t.Fatal("second Unregister succeeded")
	}
	bus.Fire(EVENT_CODE_MOUSE_MOVED, nil, EventContext{})
	if calls != 0 {
		t.Fatalf("unregistered listener called %d times", calls)
	}
}

func TestEventBusContextCarriesCodeAndData(t *testing.T) {
	bus := NewEventBus()
	var got EventContext
	bus.Register(EVENT_CODE_RESIZED, &listener{}, func(_ SystemEventCode, _, _ interface{}, ctx EventContext) bool {
		got = ctx
		return true
	})
	bus.Fire(EVENT_CODE_RESIZED, nil, EventContext{Data: &ResizeEvent{Width: 640, Height: 480}})

	if got.Type != EVENT_CODE_RESIZED {
		t.Fatalf("context type = %d, want %d", got.Type, EVENT_CODE_RESIZED)
	}
	e, ok := got.Data.(*ResizeEvent)
	if !ok || e.Width != 640 || e.Height != 480 {
		t.Fatalf("context data = %#v", got.Data)
	}
}

func TestEventBusShutdown(t *testing.T) {
	bus := NewEventBus()
	var calls int
	bus.Register(EVENT_CODE_RESIZED, &listener{}, func(SystemEventCode, interface{}, interface{}, EventContext) bool {
		calls++
		return false
	})
	bus.Shutdown()
	bus.Fire(EVENT_CODE_RESIZED, nil, EventContext{})
	if calls != 0 {
		t.Fatal("listener called after Shutdown")
	}
}
