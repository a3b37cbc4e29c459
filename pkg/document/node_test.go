package document

import (
	"image"
	"testing"
)

// TestNewNode_UniqueIDs verifies that constructors assign unique IDs.
func TestNewNode_UniqueIDs(t *testing.T) {
	a := NewGroup("a")
	b := NewRaster("b", image.Rect(0, 0, 10, 10))
	c := NewFill("c", image.Rect(0, 0, 10, 10), testColor)

	if a.ID() == 0 || b.ID() == 0 || c.ID() == 0 {
		t.Error("nodes should have non-zero IDs")
	}
	if a.ID() == b.ID() || b.ID() == c.ID() || a.ID() == c.ID() {
		t.Error("nodes should have distinct IDs")
	}
}

// TestNode_Defaults verifies the default attributes of a fresh node.
func TestNode_Defaults(t *testing.T) {
	n := NewRaster("layer", image.Rect(0, 0, 10, 10))

	if !n.Visible() {
		t.Error("new node should be visible")
	}
	if n.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1", n.Opacity())
	}
	if n.OrderKey() != 0 {
		t.Errorf("OrderKey = %v, want 0", n.OrderKey())
	}
	if n.Parent() != nil {
		t.Error("new node should have no parent")
	}
	if n.Name() != "layer" {
		t.Errorf("Name = %q, want %q", n.Name(), "layer")
	}
}

// TestSetVisible_EmitsChange verifies that attribute setters emit a
// change notification, and that no-op sets do not.
func TestSetVisible_EmitsChange(t *testing.T) {
	n := NewFill("f", image.Rect(0, 0, 4, 4), testColor)
	changes := 0
	sub := n.SubscribeChange(func() { changes++ })
	defer sub.Cancel()

	n.SetVisible(false)
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}

	n.SetVisible(false) // no-op
	if changes != 1 {
		t.Errorf("no-op SetVisible should not notify, got %d changes", changes)
	}
}

// TestSetOrderKey_EmitsOrderKeyOnly verifies that order-key changes use
// their own notification and do not fire the generic change listeners.
func TestSetOrderKey_EmitsOrderKeyOnly(t *testing.T) {
	n := NewFill("f", image.Rect(0, 0, 4, 4), testColor)
	changes := 0
	orderChanges := 0
	n.SubscribeChange(func() { changes++ })
	n.SubscribeOrderKey(func() { orderChanges++ })

	n.SetOrderKey(5)

	if orderChanges != 1 {
		t.Errorf("orderChanges = %d, want 1", orderChanges)
	}
	if changes != 0 {
		t.Errorf("generic change listeners should not fire on order-key change, got %d", changes)
	}

	n.SetOrderKey(5) // no-op
	if orderChanges != 1 {
		t.Errorf("no-op SetOrderKey should not notify, got %d", orderChanges)
	}
}

// TestSetOpacity_Clamps verifies that opacity is clamped to [0, 1].
func TestSetOpacity_Clamps(t *testing.T) {
	n := NewRaster("r", image.Rect(0, 0, 4, 4))

	n.SetOpacity(2.5)
	if n.Opacity() != 1 {
		t.Errorf("Opacity = %v, want 1 after clamping", n.Opacity())
	}

	n.SetOpacity(-0.5)
	if n.Opacity() != 0 {
		t.Errorf("Opacity = %v, want 0 after clamping", n.Opacity())
	}
}

// TestRaster_SetPixels_EmitsChange verifies that attaching content fires
// the generic change notification even when the value is nil.
func TestRaster_SetPixels_EmitsChange(t *testing.T) {
	r := NewRaster("r", image.Rect(0, 0, 4, 4))
	changes := 0
	r.SubscribeChange(func() { changes++ })

	r.SetPixels(image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}
	if r.Pixels() == nil {
		t.Error("expected pixels to be attached")
	}

	r.SetPixels(nil)
	if changes != 2 {
		t.Errorf("detaching pixels should notify, got %d changes", changes)
	}
}

// TestSubscription_CancelIdempotent verifies that Cancel may be called
// repeatedly and stops delivery.
func TestSubscription_CancelIdempotent(t *testing.T) {
	n := NewFill("f", image.Rect(0, 0, 4, 4), testColor)
	changes := 0
	sub := n.SubscribeChange(func() { changes++ })

	sub.Cancel()
	sub.Cancel()

	if !sub.IsCanceled() {
		t.Error("subscription should report canceled")
	}

	n.SetVisible(false)
	if changes != 0 {
		t.Errorf("canceled subscription should not fire, got %d changes", changes)
	}
}

// TestSubscription_CancelDuringDispatch verifies that a callback may
// cancel a sibling subscription while a notification is being delivered.
func TestSubscription_CancelDuringDispatch(t *testing.T) {
	n := NewFill("f", image.Rect(0, 0, 4, 4), testColor)

	var second *Subscription
	firstFired := 0
	secondFired := 0
	n.SubscribeChange(func() {
		firstFired++
		second.Cancel()
	})
	second = n.SubscribeChange(func() { secondFired++ })

	n.SetVisible(false)

	if firstFired != 1 {
		t.Errorf("first listener fired %d times, want 1", firstFired)
	}
	if secondFired != 0 {
		t.Errorf("listener canceled mid-dispatch should not fire, got %d", secondFired)
	}
}
