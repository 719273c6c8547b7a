package route

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigsDedupesByPathAndRestKindOnly(t *testing.T) {
	configs := NewConfigs()

	first := Config{Data: Data{Path: "/on"}, RestKind: Put, ResponseKind: ResponseOk}
	assert.True(t, configs.Insert(first))

	// Same (path, rest kind) but different response kind: still a collision.
	second := Config{Data: Data{Path: "/on"}, RestKind: Put, ResponseKind: ResponseSerial}
	assert.False(t, configs.Insert(second))

	assert.Equal(t, 1, configs.Len())
	assert.Equal(t, ResponseOk, configs.All()[0].ResponseKind)
}

func TestConfigsAllowsSamePathDifferentVerb(t *testing.T) {
	configs := NewConfigs()
	assert.True(t, configs.Insert(Config{Data: Data{Path: "/on"}, RestKind: Get}))
	assert.True(t, configs.Insert(Config{Data: Data{Path: "/on"}, RestKind: Put}))
	assert.Equal(t, 2, configs.Len())
}

func TestRestKindString(t *testing.T) {
	assert.Equal(t, "GET", Get.String())
	assert.Equal(t, "DELETE", Delete.String())
}

// The wire encoding is PascalCase per spec.md §4.1, independent of
// String()'s uppercase HTTP method line.
func TestRestKindWireEncodingIsPascalCase(t *testing.T) {
	b, err := json.Marshal(Put)
	require.NoError(t, err)
	assert.Equal(t, `"Put"`, string(b))

	var k RestKind
	require.NoError(t, json.Unmarshal([]byte(`"Delete"`), &k))
	assert.Equal(t, Delete, k)
}
