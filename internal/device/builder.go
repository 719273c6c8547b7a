package device

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"ascotgo/internal/common/logging"
	"ascotgo/internal/hazard"
	"ascotgo/internal/route"
)

// Registration pairs a finalized route configuration with the handler
// that serves it.
type Registration struct {
	Config  route.Config
	Handler http.HandlerFunc
}

// Builder is the shared runtime-checked state machine behind every
// per-category device builder (Light, Fridge, Generic). The reference
// implementation encodes "which mandatory operations remain" as
// phantom booleans threaded through the builder's type; since Go has no
// equivalent zero-cost type-state mechanism, the same invariant is
// enforced at runtime via a pending-operations set drained as each
// mandatory operation is registered, and checked by Finalize (per
// spec.md §9).
type Builder struct {
	kind        Kind
	environment Environment
	mainRoute   string
	description string

	configs  *route.Configs
	handlers map[string]http.HandlerFunc

	// allowedHazards, when non-nil, restricts every registered route's
	// hazard set to a subset of it. A nil map means any hazard is
	// accepted (the Generic device builder).
	allowedHazards map[hazard.Hazard]bool

	// pendingMandatory maps a mandatory operation name to the hazards it
	// must carry (possibly empty). Registering that operation, with a
	// conformant hazard set, removes it from the map.
	pendingMandatory map[string][]hazard.Hazard

	// mandatoryCount is incremented only when a route fulfilling a
	// pending mandatory operation is registered — it never counts
	// routes added via AddAction/AddRoute("", ...).
	mandatoryCount uint8
}

// NewBuilder constructs an empty Builder for the given device kind.
// allowedHazards == nil means any hazard set is accepted.
func NewBuilder(kind Kind, mainRoute string, allowedHazards []hazard.Hazard) *Builder {
	var allowed map[hazard.Hazard]bool
	if allowedHazards != nil {
		allowed = make(map[hazard.Hazard]bool, len(allowedHazards))
		for _, h := range allowedHazards {
			allowed[h] = true
		}
	}
	return &Builder{
		kind:             kind,
		environment:      Os,
		mainRoute:        mainRoute,
		configs:          route.NewConfigs(),
		handlers:         map[string]http.HandlerFunc{},
		allowedHazards:   allowed,
		pendingMandatory: map[string][]hazard.Hazard{},
	}
}

// WithDescription sets the device-level description.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithEnvironment overrides the descriptor's runtime environment tag.
func (b *Builder) WithEnvironment(env Environment) *Builder {
	b.environment = env
	return b
}

// RequireMandatory registers a named operation that must be added (via
// AddRoute with a matching name) before Finalize succeeds. requiredHazards
// lists hazards that registration of this operation must carry; pass
// nil to require none.
func (b *Builder) RequireMandatory(name string, requiredHazards []hazard.Hazard) *Builder {
	b.pendingMandatory[name] = requiredHazards
	return b
}

// HazardError reports that a route's hazard set violates a builder's
// allowed-hazards or mandatory-hazards policy.
type HazardError struct {
	Kind Kind
	Msg  string
}

func (e *HazardError) Error() string { return e.Msg }

// MandatoryError reports that Finalize was called while mandatory
// operations remain unregistered.
type MandatoryError struct {
	Kind    Kind
	Missing []string
}

func (e *MandatoryError) Error() string {
	sort.Strings(e.Missing)
	return fmt.Sprintf("the following mandatory actions are not set: %s", strings.Join(e.Missing, ", "))
}

func containsHazard(hazards []hazard.Hazard, h hazard.Hazard) bool {
	for _, x := range hazards {
		if x == h {
			return true
		}
	}
	return false
}

func isSubset(hazards []hazard.Hazard, allowed map[hazard.Hazard]bool) bool {
	for _, h := range hazards {
		if !allowed[h] {
			return false
		}
	}
	return true
}

// AddRoute registers a route under mandatoryName (empty string if this
// route is not one of the builder's mandatory operations). It enforces
// exactly one of two hazard policies:
//  1. if mandatoryName names a pending mandatory operation with required
//     hazards, every required hazard must be present on the route, and
//     allowedHazards is not consulted;
//  2. otherwise, if allowedHazards is set, every hazard on the route must
//     belong to it.
//
// A route-identity collision with an already-registered route (same
// path + REST kind) is logged at error level and is a non-fatal no-op,
// per spec.md §4.3; it does not return an error and does not affect
// mandatory-operation tracking of a *different* call.
func (b *Builder) AddRoute(mandatoryName string, cfg route.Config, handler http.HandlerFunc) error {
	required, isMandatory := b.pendingMandatory[mandatoryName]
	if mandatoryName == "" {
		isMandatory = false
	}

	// A mandatory operation declared with an explicit required-hazard set
	// (Fridge's increase/decrease_temperature) is checked against that
	// set alone and bypasses the builder's general allowed-hazards
	// policy, matching fridge.rs's dedicated per-action methods. A
	// mandatory operation declared with no required set (Light's
	// turn_light_on/off) instead falls through to the same allowed-hazards
	// subset check as every other route, matching light's allowed_hazards
	// gate on add_response.
	if isMandatory && required != nil {
		for _, h := range required {
			if !containsHazard(cfg.Data.Hazards, h) {
				return &HazardError{
					Kind: b.kind,
					Msg:  fmt.Sprintf("missing required hazard %s for the `%s` route", h.Name(), mandatoryName),
				}
			}
		}
	} else if b.allowedHazards != nil && !isSubset(cfg.Data.Hazards, b.allowedHazards) {
		return &HazardError{Kind: b.kind, Msg: fmt.Sprintf("hazard is not allowed for %s", strings.ToLower(b.kind.String()))}
	}

	if !b.configs.Insert(cfg) {
		logging.Log(logging.Error, "route collision: %s %s already registered on %s device, ignoring duplicate", cfg.RestKind, cfg.Data.Path, b.kind)
		return nil
	}

	b.handlers[identityKey(cfg)] = handler
	if isMandatory {
		delete(b.pendingMandatory, mandatoryName)
		b.mandatoryCount++
	}
	return nil
}

func identityKey(cfg route.Config) string {
	path, kind := cfg.Identity()
	return fmt.Sprintf("%s\x00%d", path, kind)
}

// HandlerFor returns the handler registered for cfg's identity.
func (b *Builder) HandlerFor(cfg route.Config) (http.HandlerFunc, bool) {
	h, ok := b.handlers[identityKey(cfg)]
	return h, ok
}

// Finalize validates that every mandatory operation was registered and
// returns the resulting descriptor plus routing table. It fails with a
// MandatoryError if any mandatory operation is still pending (S3).
func (b *Builder) Finalize() (Data, []Registration, error) {
	if len(b.pendingMandatory) > 0 {
		missing := make([]string, 0, len(b.pendingMandatory))
		for name := range b.pendingMandatory {
			missing = append(missing, name)
		}
		return Data{}, nil, &MandatoryError{Kind: b.kind, Missing: missing}
	}

	configs := b.configs.All()
	registrations := make([]Registration, 0, len(configs))
	for _, cfg := range configs {
		h, _ := b.HandlerFor(cfg)
		registrations = append(registrations, Registration{Config: cfg, Handler: h})
	}

	data := Data{
		Kind:            b.kind,
		Environment:     b.environment,
		MainRoute:       b.mainRoute,
		RouteConfigs:    b.configs,
		Description:     b.description,
		MandatoryRoutes: b.mandatoryCount,
	}
	return data, registrations, nil
}
