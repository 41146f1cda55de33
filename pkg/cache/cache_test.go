package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("key", "value")

	got, found := c.Get("key")

	assert.True(t, found)
	assert.Equal(t, "value", got)
}

func TestGet_Miss(t *testing.T) {
	c := New(5 * time.Minute)

	_, found := c.Get("absent")

	assert.False(t, found)
}

func TestSetWithTTL_Expires(t *testing.T) {
	c := New(5 * time.Minute)
	c.SetWithTTL("short", "value", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("short")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := New(5 * time.Minute)
	c.Set("key", "value")
	c.Delete("key")

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestKey_DeterministicAndNamespaced(t *testing.T) {
	a := Key("summary", "document text")
	b := Key("summary", "document text")
	other := Key("risk", "document text")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, other)
	assert.Contains(t, a, "summary:")
}

func TestKey_PartBoundariesMatter(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide
	assert.NotEqual(t, Key("n", "ab", "c"), Key("n", "a", "bc"))
}
