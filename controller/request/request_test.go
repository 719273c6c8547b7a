package request

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ascotgo/internal/device"
	"ascotgo/internal/parameter"
	"ascotgo/internal/route"

	"ascotgo/controller/response"
)

func rangeRouteConfig() route.Config {
	return route.Config{
		Data: route.Data{
			Path: "/on",
			Parameters: parameter.NewData().
				Add("rangeu64", parameter.RangeU64(0, 20, 1, 5)).
				Add("rangef64", parameter.RangeF64(0, 20, 0.1, 0.0)),
		},
		RestKind:     route.Put,
		ResponseKind: route.ResponseOk,
	}
}

// S5: a GET-kind request with declared parameters positions the
// caller-supplied or default value as consecutive path segments, in
// declaration order, with no request body.
func TestBuildGetAppendsDeclaredParametersAsPathSegments(t *testing.T) {
	cfg := rangeRouteConfig()
	cfg.RestKind = route.Get
	r := New("http://h.local", "light", device.Os, cfg)

	values := parameter.NewValues().Set("rangeu64", parameter.NewU64(3))
	req, err := r.Build(context.Background(), values)
	require.NoError(t, err)

	assert.Equal(t, "http://h.local/light/on/3/0", req.URL.String())
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Nil(t, req.Body)
}

// S4: a non-GET request carries every declared parameter as a JSON
// object of stringified values, using the caller-supplied value or the
// kind's default, with the path left unmodified.
func TestBuildNonGetSendsJSONBodyOfStringifiedValues(t *testing.T) {
	cfg := rangeRouteConfig()
	r := New("http://h.local", "light", device.Os, cfg)

	values := parameter.NewValues().Set("rangeu64", parameter.NewU64(3))
	req, err := r.Build(context.Background(), values)
	require.NoError(t, err)

	assert.Equal(t, "http://h.local/light/on", req.URL.String())
	assert.Equal(t, http.MethodPut, req.Method)

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rangeu64":"3","rangef64":"0"}`, string(body))
}

// S7: a caller-supplied value whose shape disagrees with the declared
// parameter's shape is rejected before any request is built.
func TestBuildRejectsWrongParameterShape(t *testing.T) {
	cfg := rangeRouteConfig()
	r := New("http://h.local", "light", device.Os, cfg)

	values := parameter.NewValues().Set("rangeu64", parameter.NewF64(0))
	_, err := r.Build(context.Background(), values)
	require.Error(t, err)
	assert.Equal(t, "rangeu64 must be of type u64", err.Error())
}

func TestDispatchSkipReturnsSkippedWithoutNetworkIO(t *testing.T) {
	cfg := rangeRouteConfig()
	r := New("http://h.local", "light", device.Os, cfg)

	resp, err := r.Dispatch(context.Background(), http.DefaultClient, nil, true)
	require.NoError(t, err)
	assert.Equal(t, response.Skipped{}, resp)
}

func TestDispatchSendsBuiltRequestAndWrapsOkResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/light/on", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		w.Write([]byte(`{"action_terminated_correctly":true}`))
	}))
	defer srv.Close()

	cfg := rangeRouteConfig()
	r := New(srv.URL, "light", device.Os, cfg)

	resp, err := r.Dispatch(context.Background(), srv.Client(), nil, false)
	require.NoError(t, err)

	okParser, ok := resp.(*response.OkResponseParser)
	require.True(t, ok)

	body, err := okParser.ParseBody()
	require.NoError(t, err)
	assert.True(t, body.ActionTerminatedCorrectly)
}
