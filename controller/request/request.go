// Package request implements the controller-side Request Core (C5):
// parameter validation, GET-path/JSON-body dispatch, and response-kind
// wrapping, grounded on ascot-controller/src/request.rs.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ascotgo/internal/device"
	"ascotgo/internal/hazard"
	"ascotgo/internal/parameter"
	"ascotgo/internal/route"

	"ascotgo/controller/response"
)

func slashEnd(s string) string {
	if len(s) > 1 && strings.HasSuffix(s, "/") {
		return s[:len(s)-1]
	}
	return s
}

func slashStart(s string) string {
	if len(s) > 1 && strings.HasPrefix(s, "/") {
		return s[1:]
	}
	return s
}

func slashStartEnd(s string) string { return slashStart(slashEnd(s)) }

// Request is an immutable, fully-addressed handle to one device route.
type Request struct {
	RestKind        route.RestKind
	Hazards         []hazard.Hazard
	Route           string
	ParametersData  *parameter.Data
	ResponseKind    route.ResponseKind
	DeviceEnvironment device.Environment
}

// New assembles a Request for cfg, mounted under mainRoute at address.
// It normalizes slashes exactly as ascot-controller/src/request.rs does:
// address loses a trailing slash, main_route and the route path each
// lose both a leading and trailing slash, then the three are joined
// with "/".
func New(address, mainRoute string, environment device.Environment, cfg route.Config) *Request {
	full := fmt.Sprintf("%s/%s/%s", slashEnd(address), slashStartEnd(mainRoute), slashStartEnd(cfg.Data.Path))
	return &Request{
		RestKind:          cfg.RestKind,
		Hazards:           cfg.Data.Hazards,
		Route:             full,
		ParametersData:    cfg.Data.Parameters,
		ResponseKind:      cfg.ResponseKind,
		DeviceEnvironment: environment,
	}
}

// Build validates values against the request's declared parameters and
// assembles the concrete *http.Request to dispatch, without sending it.
// Per spec.md §4.5: a Get request's declared parameters are appended to
// the path, in declaration order, using the caller-supplied value or
// the kind's default when absent; every other verb carries the
// parameters as a JSON object of stringified values with an unmodified
// path.
func (r *Request) Build(ctx context.Context, values *parameter.Values) (*http.Request, error) {
	if values == nil {
		values = parameter.NewValues()
	}
	if err := parameter.Check(r.ParametersData, values); err != nil {
		return nil, err
	}

	if r.RestKind == route.Get {
		return http.NewRequestWithContext(ctx, "GET", r.getPath(values), nil)
	}

	body, err := r.jsonBody(values)
	if err != nil {
		return nil, err
	}
	return http.NewRequestWithContext(ctx, r.RestKind.String(), r.Route, bytes.NewReader(body))
}

// getPath appends one path segment per declared parameter, in
// declaration order: the caller-supplied value if present, else the
// kind's default, formatted with AsString/DefaultAsString. Character
// sequences are appended verbatim, unencoded, matching the reference
// wire contract (spec.md §9).
func (r *Request) getPath(values *parameter.Values) string {
	var b strings.Builder
	b.WriteString(r.Route)
	if r.ParametersData == nil {
		return b.String()
	}
	for _, name := range r.ParametersData.Keys() {
		kind, _ := r.ParametersData.Get(name)
		var s string
		if v, ok := values.Get(name); ok {
			s = v.AsString()
		} else {
			s = kind.DefaultAsString()
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

func (r *Request) jsonBody(values *parameter.Values) ([]byte, error) {
	params := map[string]string{}
	if r.ParametersData != nil {
		for _, name := range r.ParametersData.Keys() {
			kind, _ := r.ParametersData.Get(name)
			if v, ok := values.Get(name); ok {
				params[name] = v.AsString()
			} else {
				params[name] = kind.DefaultAsString()
			}
		}
	}
	return json.Marshal(params)
}

// Dispatch validates values, builds and sends the HTTP request on
// client, and wraps the result per the route's declared ResponseKind.
// If skip is true, no network I/O happens at all and Dispatch returns
// Skipped — a hook for privacy/hazard policy engines upstream of the
// Request Core.
func (r *Request) Dispatch(ctx context.Context, client *http.Client, values *parameter.Values, skip bool) (response.Response, error) {
	if skip {
		return response.Skipped{}, nil
	}

	req, err := r.Build(ctx, values)
	if err != nil {
		return nil, err
	}
	if r.RestKind != route.Get {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: dispatching %s %s: %w", r.RestKind, r.Route, err)
	}

	switch r.ResponseKind {
	case route.ResponseOk:
		return response.NewOk(resp), nil
	case route.ResponseSerial:
		return response.NewSerial(resp), nil
	case route.ResponseInfo:
		return response.NewInfo(resp), nil
	default:
		return response.NewStream(resp), nil
	}
}
