package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]string]bool{
		{OrderPending, OrderProcessing}:    true,
		{OrderPending, OrderCancelled}:     true,
		{OrderProcessing, OrderCompleted}:  true,
		{OrderProcessing, OrderCancelled}:  true,
		{OrderPending, OrderCompleted}:     false,
		{OrderProcessing, OrderPending}:    false,
		{OrderCompleted, OrderCancelled}:   false,
		{OrderCompleted, OrderProcessing}:  false,
		{OrderCancelled, OrderPending}:     false,
		{OrderCancelled, OrderProcessing}:  false,
		{OrderPending, OrderPending}:       false,
		{OrderCompleted, OrderCompleted}:   false,
	}

	for pair, want := range allowed {
		assert.Equal(t, want, CanTransition(pair[0], pair[1]),
			"%s -> %s", pair[0], pair[1])
	}
}

func TestTerminalStatesNeverMove(t *testing.T) {
	statuses := []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}
	for _, terminal := range []string{OrderCompleted, OrderCancelled} {
		for _, to := range statuses {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range []string{PayStripe, PayJazzCash, PayEasyPaisa, PayCOD} {
		assert.True(t, ValidPaymentMethod(method))
	}
	assert.False(t, ValidPaymentMethod("paypal"))
	assert.False(t, ValidPaymentMethod(""))
	assert.False(t, ValidPaymentMethod("Stripe"))
}

func TestValidOrderStatus(t *testing.T) {
	for _, status := range []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled} {
		assert.True(t, ValidOrderStatus(status))
	}
	assert.False(t, ValidOrderStatus("shipped"))
	assert.False(t, ValidOrderStatus(""))
}
