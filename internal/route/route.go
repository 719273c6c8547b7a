// Package route implements the descriptor model: RouteData, RouteConfig,
// RouteConfigs, RestKind and ResponseKind.
package route

import (
	"encoding/json"
	"fmt"

	"ascotgo/internal/hazard"
	"ascotgo/internal/parameter"
)

// RestKind is the HTTP verb a route is invoked with.
type RestKind int

const (
	Get RestKind = iota
	Put
	Post
	Delete
)

func (k RestKind) String() string {
	switch k {
	case Get:
		return "GET"
	case Put:
		return "PUT"
	case Post:
		return "POST"
	case Delete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// wireName is the PascalCase enum-variant name used on the wire, kept
// distinct from String()'s uppercase HTTP method line.
func (k RestKind) wireName() string {
	switch k {
	case Get:
		return "Get"
	case Put:
		return "Put"
	case Post:
		return "Post"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

func (k RestKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.wireName()) }

func (k *RestKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "Get":
		*k = Get
	case "Put":
		*k = Put
	case "Post":
		*k = Post
	case "Delete":
		*k = Delete
	default:
		return fmt.Errorf("route: unknown REST kind %q", s)
	}
	return nil
}

// ResponseKind tags the shape of a route's response body.
type ResponseKind int

const (
	ResponseOk ResponseKind = iota
	ResponseSerial
	ResponseInfo
	ResponseStream
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseOk:
		return "Ok"
	case ResponseSerial:
		return "Serial"
	case ResponseInfo:
		return "Info"
	case ResponseStream:
		return "Stream"
	default:
		return "Unknown"
	}
}

func (k ResponseKind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

func (k *ResponseKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "Ok":
		*k = ResponseOk
	case "Serial":
		*k = ResponseSerial
	case "Info":
		*k = ResponseInfo
	case "Stream":
		*k = ResponseStream
	default:
		return fmt.Errorf("route: unknown response kind %q", s)
	}
	return nil
}

// Data is the declarative body of a single route: path, optional
// description, declared hazards, and declared input parameters.
type Data struct {
	Path        string
	Description string
	Hazards     []hazard.Hazard
	Parameters  *parameter.Data
}

type wireData struct {
	Path        string          `json:"path"`
	Description string          `json:"description,omitempty"`
	Hazards     []hazard.Hazard `json:"hazards,omitempty"`
	Parameters  *parameter.Data `json:"parameters,omitempty"`
}

func (d Data) MarshalJSON() ([]byte, error) {
	w := wireData{Path: d.Path, Description: d.Description, Hazards: d.Hazards, Parameters: d.Parameters}
	if w.Parameters == nil {
		w.Parameters = parameter.NewData()
	}
	return json.Marshal(w)
}

// Config is a fully-specified route registration: its data, the HTTP
// verb it answers on, and the shape of its response body.
//
// Identity (used by Configs for dedup/collision detection) is the pair
// (Path, RestKind) only — differing parameters or hazards never
// distinguish two routes for identity purposes.
type Config struct {
	Data         Data
	RestKind     RestKind
	ResponseKind ResponseKind
}

// wireConfig embeds wireData, not Data: embedding Data would promote
// Data.MarshalJSON and drop the REST kind and response kind fields.
type wireConfig struct {
	wireData
	RestKind     RestKind     `json:"REST kind"`
	ResponseKind ResponseKind `json:"response kind"`
}

func (c Config) MarshalJSON() ([]byte, error) {
	d := wireData{Path: c.Data.Path, Description: c.Data.Description, Hazards: c.Data.Hazards, Parameters: c.Data.Parameters}
	if d.Parameters == nil {
		d.Parameters = parameter.NewData()
	}
	return json.Marshal(wireConfig{wireData: d, RestKind: c.RestKind, ResponseKind: c.ResponseKind})
}

// Identity returns the (path, rest kind) pair that determines route
// equality.
func (c Config) Identity() (string, RestKind) { return c.Data.Path, c.RestKind }

// Configs is an insertion-ordered set of Config, keyed by Identity.
// Inserting a Config whose identity already exists in the set is a
// silent no-op: the original registration is kept.
type Configs struct {
	order []Config
	seen  map[string]bool
}

// NewConfigs returns an empty Configs.
func NewConfigs() *Configs {
	return &Configs{seen: map[string]bool{}}
}

func identityKey(path string, kind RestKind) string {
	return fmt.Sprintf("%s\x00%d", path, kind)
}

// Insert adds cfg to the set. It returns false if cfg collided with an
// already-registered route of the same identity (path, rest kind), in
// which case the set is unchanged.
func (c *Configs) Insert(cfg Config) bool {
	key := identityKey(cfg.Data.Path, cfg.RestKind)
	if c.seen[key] {
		return false
	}
	c.seen[key] = true
	c.order = append(c.order, cfg)
	return true
}

// All returns the registered configs in insertion order.
func (c *Configs) All() []Config {
	out := make([]Config, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Configs) Len() int { return len(c.order) }

func (c *Configs) MarshalJSON() ([]byte, error) {
	if c == nil || len(c.order) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(c.order)
}
