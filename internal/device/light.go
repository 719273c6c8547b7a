package device

import (
	"net/http"

	"ascotgo/internal/hazard"
	"ascotgo/internal/route"
)

const (
	lightTurnOn  = "turn_light_on"
	lightTurnOff = "turn_light_off"
)

// LightAllowedHazards is the full set of hazards a Light device's routes
// may declare. Any route (mandatory or not) carrying a hazard outside
// this set is rejected, per spec.md §4.3.
var LightAllowedHazards = []hazard.Hazard{hazard.FireHazard, hazard.ElectricEnergyConsumption}

// LightBuilder assembles the descriptor and routing table for a light
// device: two mandatory actions, turn_light_on and turn_light_off, each
// free to declare any subset of LightAllowedHazards.
type LightBuilder struct {
	*Builder
}

// NewLight starts a LightBuilder mounted at mainRoute.
func NewLight(mainRoute string) *LightBuilder {
	b := NewBuilder(Light, mainRoute, LightAllowedHazards)
	b.RequireMandatory(lightTurnOn, nil)
	b.RequireMandatory(lightTurnOff, nil)
	return &LightBuilder{Builder: b}
}

// TurnLightOn registers the mandatory turn-on route.
func (l *LightBuilder) TurnLightOn(cfg route.Config, handler http.HandlerFunc) error {
	return l.AddRoute(lightTurnOn, cfg, handler)
}

// TurnLightOff registers the mandatory turn-off route.
func (l *LightBuilder) TurnLightOff(cfg route.Config, handler http.HandlerFunc) error {
	return l.AddRoute(lightTurnOff, cfg, handler)
}

// AddAction registers an additional, non-mandatory route, still subject
// to LightAllowedHazards.
func (l *LightBuilder) AddAction(cfg route.Config, handler http.HandlerFunc) error {
	return l.AddRoute("", cfg, handler)
}

// Build finalizes the light device, failing if either mandatory action
// was never registered.
func (l *LightBuilder) Build() (Data, []Registration, error) {
	return l.Finalize()
}
