package device

import (
	"net/http"

	"ascotgo/internal/hazard"
	"ascotgo/internal/route"
)

const (
	fridgeIncreaseTemperature = "increase_temperature"
	fridgeDecreaseTemperature = "decrease_temperature"
)

// FridgeAllowedHazards restricts the fridge's non-mandatory actions
// (registered via AddAction) to FireHazard alone, grounded on
// fridge.rs's allowed_hazards.
var FridgeAllowedHazards = []hazard.Hazard{hazard.FireHazard}

// FridgeBuilder assembles the descriptor and routing table for a fridge
// device. increase_temperature and decrease_temperature are mandatory
// and each carries its own fixed required-hazard set, independent of
// FridgeAllowedHazards.
type FridgeBuilder struct {
	*Builder
}

// NewFridge starts a FridgeBuilder mounted at mainRoute.
func NewFridge(mainRoute string) *FridgeBuilder {
	b := NewBuilder(Fridge, mainRoute, FridgeAllowedHazards)
	b.RequireMandatory(fridgeIncreaseTemperature, []hazard.Hazard{hazard.ElectricEnergyConsumption, hazard.FireHazard})
	b.RequireMandatory(fridgeDecreaseTemperature, []hazard.Hazard{hazard.ElectricEnergyConsumption})
	return &FridgeBuilder{Builder: b}
}

// IncreaseTemperature registers the mandatory increase-temperature
// route. cfg must declare both ElectricEnergyConsumption and FireHazard.
func (f *FridgeBuilder) IncreaseTemperature(cfg route.Config, handler http.HandlerFunc) error {
	return f.AddRoute(fridgeIncreaseTemperature, cfg, handler)
}

// DecreaseTemperature registers the mandatory decrease-temperature
// route. cfg must declare ElectricEnergyConsumption.
func (f *FridgeBuilder) DecreaseTemperature(cfg route.Config, handler http.HandlerFunc) error {
	return f.AddRoute(fridgeDecreaseTemperature, cfg, handler)
}

// AddAction registers an additional, non-mandatory route, subject to
// FridgeAllowedHazards.
func (f *FridgeBuilder) AddAction(cfg route.Config, handler http.HandlerFunc) error {
	return f.AddRoute("", cfg, handler)
}

// Build finalizes the fridge device, failing and naming whichever of
// increase_temperature/decrease_temperature was never registered (S3).
func (f *FridgeBuilder) Build() (Data, []Registration, error) {
	return f.Finalize()
}
