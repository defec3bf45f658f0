package models

import "testing"

func TestCanTransitionPickup(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{PickupPending, PickupAccepted, true},
		{PickupPending, PickupRejected, true},
		{PickupAccepted, PickupCompleted, true},
		{PickupPending, PickupCompleted, false},
		{PickupAccepted, PickupRejected, false},
		{PickupRejected, PickupAccepted, false},
		{PickupCompleted, PickupPending, false},
		{"", PickupAccepted, false},
	}

	for _, c := range cases {
		if got := CanTransitionPickup(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionPickup(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderShipped, true},
		{OrderShipped, OrderDelivered, true},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderPending, false},
		{OrderDelivered, OrderShipped, false},
		{OrderDelivered, OrderDelivered, false},
		{"Cancelled", OrderShipped, false},
	}

	for _, c := range cases {
		if got := CanTransitionOrder(c.from, c.to); got != c.want {
			t.Errorf("CanTransitionOrder(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
