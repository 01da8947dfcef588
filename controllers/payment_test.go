package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionRefPrefix(t *testing.T) {
	jc := newTransactionRef("JC")
	ep := newTransactionRef("EP")

	assert.True(t, strings.HasPrefix(jc, "JC"))
	assert.True(t, strings.HasPrefix(ep, "EP"))
	assert.Len(t, jc, 14)
	assert.Len(t, ep, 14)
}

func TestNewTransactionRefUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		ref := newTransactionRef("JC")
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestPaisaAmount(t *testing.T) {
	assert.Equal(t, int64(299900), paisaAmount(2999))
	assert.Equal(t, int64(150), paisaAmount(1.5))
	assert.Equal(t, int64(0), paisaAmount(0))

	// Prices whose float product lands just under the integer must
	// round, not truncate.
	assert.Equal(t, int64(1999), paisaAmount(19.99))
	assert.Equal(t, int64(1), paisaAmount(0.01))
	assert.Equal(t, int64(1005), paisaAmount(10.05))
}

func TestDecodeInitiationRequiresOrderID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/payment/jazzcash/initiate",
		strings.NewReader(`{"amount":2999,"phone":"03001234567"}`))

	_, ok := decodeInitiation(rec, req, true)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "orderId")
}

func TestDecodeInitiationValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/payment/jazzcash/initiate",
		strings.NewReader(`{"amount":2999,"phone":"03001234567","orderId":"64f1c0ffee0000000000abcd"}`))

	got, ok := decodeInitiation(rec, req, true)

	assert.True(t, ok)
	assert.Equal(t, 2999.0, got.Amount)
	assert.Equal(t, "64f1c0ffee0000000000abcd", got.OrderID)
}
