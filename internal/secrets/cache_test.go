package secrets

import (
	"testing"
	"time"

	"focusd/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestMasterCache_PutGetClear(t *testing.T) {
	c := NewMasterCache()

	_, ok := c.Get("work")
	assert.False(t, ok)

	c.Put("work", "passphrase")
	got, ok := c.Get("work")
	assert.True(t, ok)
	assert.Equal(t, "passphrase", got)

	c.Clear("work")
	_, ok = c.Get("work")
	assert.False(t, ok)
}

func TestMasterCache_TTLBoundary(t *testing.T) {
	c := NewMasterCache()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put("work", "passphrase")

	// just inside the TTL
	c.now = func() time.Time { return now.Add(common.MasterCacheTTL - time.Second) }
	_, ok := c.Get("work")
	assert.True(t, ok)

	// exactly at the TTL the entry is already gone
	c.now = func() time.Time { return now.Add(common.MasterCacheTTL) }
	_, ok = c.Get("work")
	assert.False(t, ok)

	// and stays gone even if the clock rolls back
	c.now = func() time.Time { return now }
	_, ok = c.Get("work")
	assert.False(t, ok)
}

func TestMasterCache_PutRestartsTTL(t *testing.T) {
	c := NewMasterCache()

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Put("work", "old")

	c.now = func() time.Time { return now.Add(common.MasterCacheTTL - time.Second) }
	c.Put("work", "new")

	c.now = func() time.Time { return now.Add(common.MasterCacheTTL + time.Minute) }
	got, ok := c.Get("work")
	assert.True(t, ok)
	assert.Equal(t, "new", got)
}
