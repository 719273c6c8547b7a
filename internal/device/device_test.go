package device

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascotgo/internal/hazard"
	"ascotgo/internal/route"
)

func noopHandler(http.ResponseWriter, *http.Request) {}

func routeWithHazards(path string, kind route.RestKind, hazards ...hazard.Hazard) route.Config {
	return route.Config{
		Data:         route.Data{Path: path, Hazards: hazards},
		RestKind:     kind,
		ResponseKind: route.ResponseOk,
	}
}

// S1: registering a light with conformant routes for both mandatory
// actions succeeds and produces a descriptor exposing both routes.
func TestLightValidRegistrationSucceeds(t *testing.T) {
	b := NewLight("/light")
	require.NoError(t, b.TurnLightOn(routeWithHazards("/on", route.Put, hazard.FireHazard), noopHandler))
	require.NoError(t, b.TurnLightOff(routeWithHazards("/off", route.Put, hazard.FireHazard), noopHandler))

	data, regs, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, Light, data.Kind)
	assert.Len(t, regs, 2)
}

// S2: a light route declaring a hazard outside {FireHazard,
// ElectricEnergyConsumption} is rejected with an error naming the
// violation.
func TestLightRejectsDisallowedHazard(t *testing.T) {
	b := NewLight("/light")
	err := b.AddAction(routeWithHazards("/flood", route.Post, hazard.WaterFlooding), noopHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hazard is not allowed for light")
}

// S2 variant: the same rejection applies to a mandatory action carrying
// a disallowed hazard.
func TestLightRejectsDisallowedHazardOnMandatoryAction(t *testing.T) {
	b := NewLight("/light")
	err := b.TurnLightOn(routeWithHazards("/on", route.Put, hazard.WaterFlooding), noopHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hazard is not allowed for light")
}

// S3: finalizing a fridge builder with only one of the two mandatory
// actions registered fails, naming the missing one.
func TestFridgeBuildFailsWhenMandatoryActionsMissing(t *testing.T) {
	b := NewFridge("/fridge")
	require.NoError(t, b.IncreaseTemperature(
		routeWithHazards("/increase", route.Put, hazard.ElectricEnergyConsumption, hazard.FireHazard), noopHandler))

	_, _, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrease_temperature")
}

func TestFridgeIncreaseTemperatureRequiresBothHazards(t *testing.T) {
	b := NewFridge("/fridge")
	err := b.IncreaseTemperature(routeWithHazards("/increase", route.Put, hazard.ElectricEnergyConsumption), noopHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "increase_temperature")
}

func TestFridgeDecreaseTemperatureRequiresElectricHazard(t *testing.T) {
	b := NewFridge("/fridge")
	err := b.DecreaseTemperature(routeWithHazards("/decrease", route.Put), noopHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrease_temperature")
}

func TestFridgeAddActionRejectsHazardOutsideAllowedSet(t *testing.T) {
	b := NewFridge("/fridge")
	err := b.AddAction(routeWithHazards("/chainer", route.Post, hazard.ElectricEnergyConsumption), noopHandler)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hazard is not allowed for fridge")
}

func TestFridgeFullyRegisteredBuildSucceeds(t *testing.T) {
	b := NewFridge("/fridge")
	require.NoError(t, b.IncreaseTemperature(
		routeWithHazards("/increase", route.Put, hazard.ElectricEnergyConsumption, hazard.FireHazard), noopHandler))
	require.NoError(t, b.DecreaseTemperature(
		routeWithHazards("/decrease", route.Put, hazard.ElectricEnergyConsumption), noopHandler))

	data, regs, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, Fridge, data.Kind)
	assert.Len(t, regs, 2)
}

// MandatoryRoutes must count only the routes fulfilling a pending
// mandatory operation, not every registered route.
func TestMandatoryRoutesCountsOnlyMandatoryRegistrations(t *testing.T) {
	b := NewLight("/light")
	require.NoError(t, b.TurnLightOn(routeWithHazards("/on", route.Put, hazard.FireHazard), noopHandler))
	require.NoError(t, b.TurnLightOff(routeWithHazards("/off", route.Put, hazard.FireHazard), noopHandler))
	require.NoError(t, b.AddAction(routeWithHazards("/brightness", route.Put, hazard.FireHazard), noopHandler))

	data, regs, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, regs, 3)
	assert.Equal(t, uint8(2), data.MandatoryRoutes)
}

// mandatory_routes must round-trip through the descriptor's wire
// encoding rather than being silently dropped (invariant 6).
func TestMandatoryRoutesRoundTripsThroughJSON(t *testing.T) {
	b := NewLight("/light")
	require.NoError(t, b.TurnLightOn(routeWithHazards("/on", route.Put, hazard.FireHazard), noopHandler))
	require.NoError(t, b.TurnLightOff(routeWithHazards("/off", route.Put, hazard.FireHazard), noopHandler))

	data, _, err := b.Build()
	require.NoError(t, err)

	body, err := json.Marshal(data)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"mandatory_routes":2`)

	var roundTripped Data
	require.NoError(t, json.Unmarshal(body, &roundTripped))
	assert.Equal(t, uint8(2), roundTripped.MandatoryRoutes)
}

func TestRouteCollisionIsNonFatalNoOp(t *testing.T) {
	b := NewGeneric(Camera, "/camera")
	require.NoError(t, b.AddAction(routeWithHazards("/snap", route.Get, hazard.TakePictures), noopHandler))
	require.NoError(t, b.AddAction(routeWithHazards("/snap", route.Get, hazard.TakePictures), noopHandler))

	data, regs, err := b.Build()
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.Equal(t, 1, data.RouteConfigs.Len())
}
