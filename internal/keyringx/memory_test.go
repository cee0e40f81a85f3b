package keyringx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	m := NewMemoryStore()

	_, ok := m.Get("svc", "acc")
	assert.False(t, ok)

	require.NoError(t, m.Set("svc", "acc", "s3cret"))
	got, ok := m.Get("svc", "acc")
	require.True(t, ok)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, m.Delete("svc", "acc"))
	_, ok = m.Get("svc", "acc")
	assert.False(t, ok)
}

func TestMemoryStore_EmptySecretIsAbsent(t *testing.T) {
	m := NewMemoryStore()
	require.NoError(t, m.Set("svc", "acc", ""))

	_, ok := m.Get("svc", "acc")
	assert.False(t, ok)
}

func TestMemoryStore_FailWrites(t *testing.T) {
	m := NewMemoryStore()
	m.FailWrites = true

	assert.Error(t, m.Set("svc", "acc", "x"))
	assert.Error(t, m.Delete("svc", "acc"))
}
