package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolDropsEmpty(t *testing.T) {
	p := NewPool([]string{"", "key-a", "", "key-b"})
	assert.Equal(t, 2, p.Size())
	assert.True(t, p.Configured())
	assert.Equal(t, "key-a", p.Current())

	empty := NewPool(nil)
	assert.False(t, empty.Configured())
	assert.Equal(t, "", empty.Current())
}

func TestPoolRotation(t *testing.T) {
	p := NewPool([]string{"key-a", "key-b", "key-c"})

	assert.Equal(t, "key-a", p.Current())
	require.True(t, p.Rotate())
	assert.Equal(t, "key-b", p.Current())
	require.True(t, p.Rotate())
	assert.Equal(t, "key-c", p.Current())

	// Cursor wraps.
	require.True(t, p.Rotate())
	assert.Equal(t, "key-a", p.Current())
}

func TestPoolSingleKeyNoRotation(t *testing.T) {
	p := NewPool([]string{"only"})
	assert.False(t, p.Rotate())
	assert.Equal(t, "only", p.Current())

	assert.False(t, NewPool(nil).Rotate())
}

func TestPoolFromEnv(t *testing.T) {
	t.Setenv("MEETMIND_TEST_KEY", "base")
	t.Setenv("MEETMIND_TEST_KEY_2", "alt2")
	t.Setenv("MEETMIND_TEST_KEY_4", "alt4")

	p := PoolFromEnv("MEETMIND_TEST_KEY")
	// Unset slots are skipped; order follows slot numbers.
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, "base", p.Current())
	p.Rotate()
	assert.Equal(t, "alt2", p.Current())
	p.Rotate()
	assert.Equal(t, "alt4", p.Current())
}

func TestPoolFromEnvUnset(t *testing.T) {
	p := PoolFromEnv("MEETMIND_TEST_MISSING_KEY")
	assert.False(t, p.Configured())
}
