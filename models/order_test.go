package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, status := range ValidOrderStatuses {
		assert.True(t, status.IsValid(), "status %q", status)
	}

	assert.False(t, OrderStatus("shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
}
