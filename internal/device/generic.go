package device

import (
	"net/http"

	"ascotgo/internal/route"
)

// GenericBuilder assembles a device with no mandatory actions and no
// hazard restrictions, for devices (e.g. a camera) whose full action
// set the reference spec leaves open-ended.
type GenericBuilder struct {
	*Builder
}

// NewGeneric starts a GenericBuilder of the given kind mounted at
// mainRoute.
func NewGeneric(kind Kind, mainRoute string) *GenericBuilder {
	return &GenericBuilder{Builder: NewBuilder(kind, mainRoute, nil)}
}

// AddAction registers a route with no hazard restriction.
func (g *GenericBuilder) AddAction(cfg route.Config, handler http.HandlerFunc) error {
	return g.AddRoute("", cfg, handler)
}

// Build finalizes the device. Since GenericBuilder declares no
// mandatory actions, this never fails on their account.
func (g *GenericBuilder) Build() (Data, []Registration, error) {
	return g.Finalize()
}
