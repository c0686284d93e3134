package ordmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joetifa2003/pagecraft/internal/ordmap"
)

func collect(m *ordmap.Map[string, string]) [][2]string {
	var out [][2]string
	m.All(func(k, v string) bool {
		out = append(out, [2]string{k, v})
		return true
	})
	return out
}

func TestMap_InsertionOrder(t *testing.T) {
	m := ordmap.New[string, string]()
	m.Set("c", "3")
	m.Set("a", "1")
	m.Set("b", "2")

	assert.Equal(t, [][2]string{{"c", "3"}, {"a", "1"}, {"b", "2"}}, collect(m))
}

func TestMap_LastWriteWinsKeepsPosition(t *testing.T) {
	m := ordmap.New[string, string]()
	m.Set("a", "1")
	m.Set("b", "2")
	m.Set("a", "updated")

	require.Equal(t, 2, m.Len())
	assert.Equal(t, [][2]string{{"a", "updated"}, {"b", "2"}}, collect(m))
}

func TestMap_Delete(t *testing.T) {
	m := ordmap.New[string, string]()
	m.Set("a", "1")
	m.Set("b", "2")

	m.Delete("a")
	m.Delete("missing") // no-op

	assert.Equal(t, [][2]string{{"b", "2"}}, collect(m))

	v, ok := m.Get("a")
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestMap_Clear(t *testing.T) {
	m := ordmap.New[string, string]()
	m.Set("a", "1")
	m.Clear()

	assert.Zero(t, m.Len())

	m.Set("a", "again")
	assert.Equal(t, [][2]string{{"a", "again"}}, collect(m))
}
