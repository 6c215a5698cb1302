package models

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusPaid, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusProcessing, true},
		{OrderStatusPaid, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		{OrderStatusPending, OrderStatusProcessing, false},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPaid, OrderStatusDelivered, false},
		{OrderStatusProcessing, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusProcessing, OrderStatusPaid, false},
		{OrderStatusPaid, OrderStatusPending, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestOrderStatusTerminalStatesRejectAllEdges(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
	}

	for _, terminal := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled} {
		if !terminal.IsTerminal() {
			t.Errorf("%s should be terminal", terminal)
		}
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Errorf("terminal state %s must not transition to %s", terminal, next)
			}
		}
	}

	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusPaid, OrderStatusProcessing, OrderStatusShipped} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestOrderStatusValid(t *testing.T) {
	if OrderStatus("refunded").Valid() {
		t.Error("Unknown status should not be valid")
	}
	if !OrderStatusShipped.Valid() {
		t.Error("shipped should be valid")
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	n1 := generateOrderNumber("EW")
	n2 := generateOrderNumber("EW")

	if n1 == n2 {
		t.Error("Order numbers should be unique")
	}
	if len(n1) != len("EW20060102-XXXXXX") {
		t.Errorf("Unexpected order number format: %s", n1)
	}
}
