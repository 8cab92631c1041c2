package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry([]int64{1, 2})

	assert.True(t, r.IsAdmin(1))
	assert.True(t, r.IsAdmin(2))
	assert.False(t, r.IsAdmin(3))
}

func TestRegistryAdd(t *testing.T) {
	r := NewRegistry([]int64{1})

	assert.True(t, r.Add(2))
	assert.True(t, r.IsAdmin(2))

	// повторное добавление отклоняется
	assert.False(t, r.Add(2))
	assert.ElementsMatch(t, []int64{1, 2}, r.IDs())
}
