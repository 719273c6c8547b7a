package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"ascotgo/internal/common/logging"
	internaldevice "ascotgo/internal/device"
	"ascotgo/internal/parameter"
	"ascotgo/internal/route"
)

// Server mounts one device's descriptor and routes onto a gorilla/mux
// router, per spec.md §6's external interface: a GET / descriptor root,
// a GET /.well-known/<name> redirect to it, the device's own declared
// routes, and a debug _invoke alias per route (SPEC_FULL.md §4.8).
//
// Descriptor is read far more often than it is (conceptually) ever
// replaced, so access is guarded by a single RWMutex over the device's
// state aggregate, per spec.md §5's one-mutex-per-aggregate model.
type Server struct {
	router *mux.Router

	mu   sync.RWMutex
	data internaldevice.Data
}

// New builds a Server that serves data's descriptor and dispatches to
// the handler in each Registration.
func New(data internaldevice.Data, registrations []internaldevice.Registration, wellKnownName string) *Server {
	if wellKnownName == "" {
		wellKnownName = "ascot"
	}

	s := &Server{data: data}

	r := mux.NewRouter()
	r.Use(logging.RequestLogger)

	r.HandleFunc("/", s.descriptorHandler).Methods(http.MethodGet)
	r.HandleFunc("/.well-known/"+wellKnownName, wellKnownHandler).Methods(http.MethodGet)

	for _, reg := range registrations {
		reg := reg
		path := mountPath(data.MainRoute, reg.Config.Data.Path)
		method := reg.Config.RestKind.String()

		r.HandleFunc(path, reg.Handler).Methods(method)

		// Registered before the GET wildcard below, which would
		// otherwise match ".../_invoke" first.
		r.HandleFunc(path+"/_invoke", invokeHandler(path, reg)).Methods(http.MethodGet)

		if reg.Config.RestKind == route.Get && reg.Config.Data.Parameters != nil && !reg.Config.Data.Parameters.IsEmpty() {
			// Declared parameters are appended as positional path
			// segments (spec.md §4.5); accept and ignore them here so
			// the same handler serves both the bare and parameterized
			// forms, matching the Request Core's GET-path assembly.
			r.HandleFunc(path+"/{params:.*}", reg.Handler).Methods(http.MethodGet)
		}
	}

	s.router = r
	return s
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) descriptorHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	body, err := json.Marshal(data)
	if err != nil {
		WriteActionError(w, internaldevice.InternalError("failed to marshal device descriptor"))
		return
	}
	JSONResponse(w, http.StatusOK, body)
}

func wellKnownHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func mountPath(mainRoute, path string) string {
	return "/" + strings.Trim(mainRoute, "/") + "/" + strings.Trim(path, "/")
}

// invokeHandler builds the debug _invoke alias for reg, whose declared
// route is mounted at basePath: it decodes the
// request's query string into a parameter.Values using each declared
// parameter's kind to interpret the raw string, then re-synthesizes
// exactly the request the controller's Request Core would have built
// for the same verb (a positional GET path, or a JSON PUT/POST/DELETE
// body) and dispatches it to reg.Handler directly — the same handler
// the declared verb uses, never advertised in the device's descriptor.
func invokeHandler(basePath string, reg internaldevice.Registration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := decodeQueryValues(reg.Config.Data.Parameters, r.URL.Query())
		if err != nil {
			WriteActionError(w, internaldevice.InvalidDataError(err.Error()))
			return
		}

		var synthetic *http.Request
		if reg.Config.RestKind == route.Get {
			path := appendPositionalPath(basePath, reg.Config.Data.Parameters, values)
			synthetic, err = http.NewRequestWithContext(r.Context(), http.MethodGet, path, nil)
		} else {
			body := jsonBodyFor(reg.Config.Data.Parameters, values)
			synthetic, err = http.NewRequestWithContext(r.Context(), reg.Config.RestKind.String(), basePath, bytes.NewReader(body))
			if err == nil {
				synthetic.Header.Set("Content-Type", "application/json")
			}
		}
		if err != nil {
			WriteActionError(w, internaldevice.InternalError("failed to build invocation request"))
			return
		}

		reg.Handler(w, synthetic)
	}
}

// decodeQueryValues parses query into a parameter.Values, interpreting
// each raw string per the shape the route declares for that name. An
// undeclared query key or a value that cannot be parsed into its
// declared shape is rejected up front, the same failure mode
// parameter.Check enforces for ordinary dispatch.
func decodeQueryValues(data *parameter.Data, query map[string][]string) (*parameter.Values, error) {
	values := parameter.NewValues()
	if data == nil {
		return values, nil
	}
	for name, raw := range query {
		if len(raw) == 0 {
			continue
		}
		kind, declared := data.Get(name)
		if !declared {
			return nil, fmt.Errorf("%s does not exist", name)
		}
		val, err := parseValue(kind, raw[0])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		values.Set(name, val)
	}
	return values, nil
}

func parseValue(kind parameter.ParameterKind, raw string) (parameter.ParameterValue, error) {
	switch kind.Shape() {
	case parameter.ShapeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewBool(b), nil
	case parameter.ShapeU8:
		n, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewU8(uint8(n)), nil
	case parameter.ShapeU16:
		n, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewU16(uint16(n)), nil
	case parameter.ShapeU32:
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewU32(uint32(n)), nil
	case parameter.ShapeU64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewU64(n), nil
	case parameter.ShapeF32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewF32(float32(f)), nil
	case parameter.ShapeF64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return parameter.ParameterValue{}, err
		}
		return parameter.NewF64(f), nil
	default:
		return parameter.NewCharsSequence(raw), nil
	}
}

func appendPositionalPath(basePath string, data *parameter.Data, values *parameter.Values) string {
	var b strings.Builder
	b.WriteString(basePath)
	if data == nil {
		return b.String()
	}
	for _, name := range data.Keys() {
		kind, _ := data.Get(name)
		s := kind.DefaultAsString()
		if v, ok := values.Get(name); ok {
			s = v.AsString()
		}
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

func jsonBodyFor(data *parameter.Data, values *parameter.Values) []byte {
	params := map[string]string{}
	if data != nil {
		for _, name := range data.Keys() {
			kind, _ := data.Get(name)
			s := kind.DefaultAsString()
			if v, ok := values.Get(name); ok {
				s = v.AsString()
			}
			params[name] = s
		}
	}
	body, _ := json.Marshal(params)
	return body
}
