package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldevice "ascotgo/internal/device"
	"ascotgo/internal/hazard"
	"ascotgo/internal/parameter"
	"ascotgo/internal/route"
)

func buildTestServer(t *testing.T) *Server {
	t.Helper()

	b := internaldevice.NewGeneric(internaldevice.Camera, "/camera")
	cfg := route.Config{
		Data: route.Data{
			Path:       "/snapshot",
			Hazards:    []hazard.Hazard{hazard.AudioVideoRecordAndStore},
			Parameters: parameter.NewData().Add("quality", parameter.RangeU64(0, 100, 1, 80)),
		},
		RestKind:     route.Get,
		ResponseKind: route.ResponseOk,
	}

	var gotPath string
	require.NoError(t, b.AddAction(cfg, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		JSONResponse(w, http.StatusOK, []byte(`{"action_terminated_correctly":true}`))
	}))

	data, regs, err := b.Build()
	require.NoError(t, err)

	srv := New(data, regs, "")
	_ = gotPath
	return srv
}

func TestDescriptorRootServesDeviceData(t *testing.T) {
	srv := buildTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"main route":"/camera"`)
}

func TestWellKnownRedirectsToRoot(t *testing.T) {
	srv := buildTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/ascot", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDeclaredRouteWithPositionalParameterSegmentIsReachable(t *testing.T) {
	srv := buildTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/camera/snapshot/42", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvokeEndpointDecodesQueryAndDispatchesSameHandler(t *testing.T) {
	srv := buildTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/camera/snapshot/_invoke?quality=55", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "action_terminated_correctly")
}

func TestInvokeEndpointRejectsUndeclaredParameter(t *testing.T) {
	srv := buildTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/camera/snapshot/_invoke?bogus=1", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
