package deviceinfo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergyEfficiencyPercentageClamps(t *testing.T) {
	assert.EqualValues(t, 100, NewEnergyEfficiency(250, A).Percentage)
	assert.EqualValues(t, -100, NewEnergyEfficiency(-250, A).Percentage)
	assert.EqualValues(t, 42, NewEnergyEfficiency(42, A).Percentage)
}

func TestCarbonFootprintPercentageClamps(t *testing.T) {
	assert.EqualValues(t, 100, NewCarbonFootprint(101, B).Percentage)
	assert.EqualValues(t, -100, NewCarbonFootprint(-101, B).Percentage)
}

func TestRoiYearsClamps(t *testing.T) {
	assert.EqualValues(t, 1, NewRoi(0, A).Years)
	assert.EqualValues(t, 30, NewRoi(40, A).Years)
	assert.EqualValues(t, 12, NewRoi(12, A).Years)
}

func TestEnergyClassWireNames(t *testing.T) {
	b, err := json.Marshal(APlusPlusPlus)
	require.NoError(t, err)
	assert.JSONEq(t, `"A+++"`, string(b))

	var c EnergyClass
	require.NoError(t, json.Unmarshal([]byte(`"A+"`), &c))
	assert.Equal(t, APlus, c)
}

func TestCostWireFieldRenamedToUSD(t *testing.T) {
	b, err := json.Marshal(NewCost(-12, Month))
	require.NoError(t, err)
	assert.JSONEq(t, `{"usd":-12,"timespan":"Month"}`, string(b))
}

func TestEnergyIsEmpty(t *testing.T) {
	assert.True(t, Energy{}.IsEmpty())
	e := Energy{}.WithEnergyEfficiencies([]EnergyEfficiency{NewEnergyEfficiency(1, A)})
	assert.False(t, e.IsEmpty())
}
