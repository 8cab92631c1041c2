package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBlocksRepeatedAction(t *testing.T) {
	r := NewRateLimiter()

	assert.False(t, r.IsLimited(1, "/start"))
	assert.True(t, r.IsLimited(1, "/start"))
}

func TestRateLimiterIsPerUser(t *testing.T) {
	r := NewRateLimiter()

	assert.False(t, r.IsLimited(1, "confirm_purchase"))
	assert.False(t, r.IsLimited(2, "confirm_purchase"))
	assert.True(t, r.IsLimited(1, "confirm_purchase"))
}

func TestRateLimiterIsPerAction(t *testing.T) {
	r := NewRateLimiter()

	assert.False(t, r.IsLimited(1, "/start"))
	assert.False(t, r.IsLimited(1, "buy_product"))
}

func TestRateLimiterDefaultLimit(t *testing.T) {
	r := NewRateLimiter()

	assert.False(t, r.IsLimited(1, "/unknown"))
	assert.True(t, r.IsLimited(1, "/unknown"))
}
