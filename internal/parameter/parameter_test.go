package parameter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataPreservesInsertionOrderAndDedups(t *testing.T) {
	d := NewData().
		Add("bool", Bool(true)).
		Add("u8", U8Unbounded(0)).
		Add("rangeu64", RangeU64(0, 20, 1, 5)).
		Add("rangef64", RangeF64(0, 20, 0.1, 5)).
		// duplicate insert must be a no-op, keeping original position/value
		Add("u8", U8Unbounded(9))

	assert.Equal(t, []string{"bool", "u8", "rangeu64", "rangef64"}, d.Keys())
	kind, ok := d.Get("u8")
	require.True(t, ok)
	assert.Equal(t, uint64(0), kind.DefaultU64)
}

func TestParameterKindRoundTrip(t *testing.T) {
	d := NewData().
		Add("rangeu64", RangeU64(0, 20, 1, 5)).
		Add("rangef64", RangeF64(0, 20, 0.1, 5))

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var out Data
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, d.Keys(), out.Keys())

	k, ok := out.Get("rangeu64")
	require.True(t, ok)
	assert.Equal(t, uint64(5), k.DefaultU64)
	assert.Equal(t, uint64(20), k.MaxU64)
}

func TestCheckRejectsUndeclaredName(t *testing.T) {
	data := NewData().Add("rangeu64", RangeU64(0, 20, 1, 5))
	values := NewValues().Set("wrong", NewU64(1))

	err := Check(data, values)
	require.Error(t, err)
	assert.Equal(t, "wrong does not exist", err.Error())
}

// S7: caller supplies f64(0.0) for a RangeU64 parameter.
func TestCheckRejectsWrongShape(t *testing.T) {
	data := NewData().Add("rangeu64", RangeU64(0, 20, 1, 5))
	values := NewValues().Set("rangeu64", NewF64(0))

	err := Check(data, values)
	require.Error(t, err)
	assert.Equal(t, "rangeu64 must be of type u64", err.Error())
}

func TestCheckAcceptsConformantRangeValue(t *testing.T) {
	data := NewData().Add("rangeu64", RangeU64(0, 20, 1, 5))
	values := NewValues().Set("rangeu64", NewU64(3))

	assert.NoError(t, Check(data, values))
}

func TestDefaultAsStringMatchesRustFloatDisplay(t *testing.T) {
	assert.Equal(t, "0", RangeF64(0, 20, 0.1, 0).DefaultAsString())
	assert.Equal(t, "5", RangeF64(0, 20, 0.1, 5).DefaultAsString())
	assert.Equal(t, "3", RangeU64(0, 20, 1, 3).DefaultAsString())
}
