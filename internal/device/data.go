// Package device implements the per-category device builders (C3) and
// the DeviceData descriptor they produce.
package device

import (
	"encoding/json"
	"fmt"

	"ascotgo/internal/route"
)

// Kind is the closed set of device categories a builder exists for.
type Kind int

const (
	Unknown Kind = iota
	Light
	Fridge
	Camera
)

var kindNames = [...]string{Unknown: "Unknown", Light: "Light", Fridge: "Fridge", Camera: "Camera"}

func (k Kind) String() string { return kindNames[k] }

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *Kind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for kind, name := range kindNames {
		if name == s {
			*k = Kind(kind)
			return nil
		}
	}
	return fmt.Errorf("device: unknown device kind %q", s)
}

// Environment distinguishes the runtime hosting a device: a normal
// OS-hosted HTTP server, or an embedded MCU target. Per spec.md §9 this
// implementation normalizes dispatch behavior (Request Core always
// builds a positional GET path, regardless of environment); Environment
// is retained on DeviceData/Request for descriptor fidelity and is
// exercised in tests but does not currently branch Request Core
// behavior.
type Environment int

const (
	Os Environment = iota
	Mcu
)

var environmentNames = [...]string{Os: "Os", Mcu: "Mcu"}

func (e Environment) String() string { return environmentNames[e] }

func (e Environment) MarshalJSON() ([]byte, error) { return json.Marshal(e.String()) }

func (e *Environment) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for env, name := range environmentNames {
		if name == s {
			*e = Environment(env)
			return nil
		}
	}
	return fmt.Errorf("device: unknown device environment %q", s)
}

// Data is the immutable, serializable descriptor of a device: its kind,
// runtime environment, the route prefix all its routes are mounted
// under, and the full set of registered routes.
type Data struct {
	Kind            Kind
	Environment     Environment
	MainRoute       string
	RouteConfigs    *route.Configs
	Description     string
	WifiMAC         *[6]byte
	EthernetMAC     *[6]byte
	MandatoryRoutes uint8
}

type wireData struct {
	Kind            Kind           `json:"kind"`
	Environment     Environment    `json:"environment"`
	MainRoute       string         `json:"main route"`
	RouteConfigs    *route.Configs `json:"route_configs"`
	Description     string         `json:"description,omitempty"`
	WifiMAC         *[6]byte       `json:"wifi_mac,omitempty"`
	EthernetMAC     *[6]byte       `json:"ethernet_mac,omitempty"`
	MandatoryRoutes uint8          `json:"mandatory_routes"`
}

// MarshalJSON renders Data with the wire-contract field renames from
// spec.md §4.1: main_route -> "main route". wifi_mac/ethernet_mac and
// description are omitted entirely when absent; route_configs is
// always present, even when empty.
func (d Data) MarshalJSON() ([]byte, error) {
	w := wireData{
		Kind:            d.Kind,
		Environment:     d.Environment,
		MainRoute:       d.MainRoute,
		RouteConfigs:    d.RouteConfigs,
		Description:     d.Description,
		WifiMAC:         d.WifiMAC,
		EthernetMAC:     d.EthernetMAC,
		MandatoryRoutes: d.MandatoryRoutes,
	}
	if w.RouteConfigs == nil {
		w.RouteConfigs = route.NewConfigs()
	}
	return json.Marshal(w)
}

func (d *Data) UnmarshalJSON(b []byte) error {
	var w wireData
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	d.Kind = w.Kind
	d.Environment = w.Environment
	d.MainRoute = w.MainRoute
	d.RouteConfigs = w.RouteConfigs
	d.Description = w.Description
	d.WifiMAC = w.WifiMAC
	d.EthernetMAC = w.EthernetMAC
	d.MandatoryRoutes = w.MandatoryRoutes
	return nil
}

// ErrorKind is the wire tag of a device-side handler error response.
type ErrorKind int

const (
	InvalidData ErrorKind = iota
	Internal
)

func (k ErrorKind) String() string {
	if k == InvalidData {
		return "InvalidData"
	}
	return "Internal"
}

func (k ErrorKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// ActionError is the structured HTTP 500 body a device handler returns
// when it cannot complete an action, per spec.md §6/§7.
type ActionError struct {
	Kind        ErrorKind `json:"error"`
	Description string    `json:"description"`
	Info        string    `json:"info,omitempty"`
}

func InvalidDataError(description string) ActionError {
	return ActionError{Kind: InvalidData, Description: description}
}

func InternalError(description string) ActionError {
	return ActionError{Kind: Internal, Description: description}
}

func (e ActionError) WithInfo(info string) ActionError {
	e.Info = info
	return e
}
