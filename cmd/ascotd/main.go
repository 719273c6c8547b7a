// Command ascotd is a minimal example device server: it builds a single
// light device, wires up hazard-event telemetry and an mDNS-SD
// advertisement from the loaded config, and serves the result over
// HTTP. Per the teacher's main.go composition (devices -> routes ->
// router -> ListenAndServe), adapted to the builder/server pipeline.
package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ascotgo/internal/common/config"
	"ascotgo/internal/common/logging"
	internaldevice "ascotgo/internal/device"
	"ascotgo/internal/hazard"
	"ascotgo/internal/mdns"
	"ascotgo/internal/parameter"
	"ascotgo/internal/route"
	"ascotgo/internal/server"
)

func loadConfig() (*config.Config, error) {
	path := os.Getenv("ASCOTCONFIG")
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Log(logging.Error, "could not read config path (ASCOTCONFIG=%s): %v", path, err)
		return nil, err
	}

	cfg := &config.Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		logging.Log(logging.Error, "could not parse config path (ASCOTCONFIG=%s): %v", path, err)
		return nil, err
	}
	return cfg, nil
}

// buildExampleLight assembles the one light device this binary serves.
// A real device author supplies handlers that drive actual hardware;
// these stubs only demonstrate the wiring and always report success.
func buildExampleLight(events *internaldevice.EventPublisher) (internaldevice.Data, []internaldevice.Registration, error) {
	l := internaldevice.NewLight("/light")
	l.WithDescription("example light")

	okBody := []byte(`{"action_terminated_correctly":true}`)

	onCfg := route.Config{
		Data: route.Data{
			Path:    "/on",
			Hazards: []hazard.Hazard{hazard.ElectricEnergyConsumption},
		},
		RestKind:     route.Put,
		ResponseKind: route.ResponseOk,
	}
	if err := l.TurnLightOn(onCfg, func(w http.ResponseWriter, r *http.Request) {
		server.JSONResponse(w, http.StatusOK, okBody)
		events.Publish(internaldevice.Light, "/light", onCfg, false)
	}); err != nil {
		return internaldevice.Data{}, nil, err
	}

	offCfg := route.Config{
		Data:     route.Data{Path: "/off"},
		RestKind: route.Put,
		ResponseKind: route.ResponseOk,
	}
	if err := l.TurnLightOff(offCfg, func(w http.ResponseWriter, r *http.Request) {
		server.JSONResponse(w, http.StatusOK, okBody)
		events.Publish(internaldevice.Light, "/light", offCfg, false)
	}); err != nil {
		return internaldevice.Data{}, nil, err
	}

	brightnessCfg := route.Config{
		Data: route.Data{
			Path:       "/brightness",
			Hazards:    []hazard.Hazard{hazard.ElectricEnergyConsumption},
			Parameters: parameter.NewData().Add("level", parameter.RangeU64(0, 100, 1, 50)),
		},
		RestKind:     route.Put,
		ResponseKind: route.ResponseOk,
	}
	if err := l.AddAction(brightnessCfg, func(w http.ResponseWriter, r *http.Request) {
		server.JSONResponse(w, http.StatusOK, okBody)
		events.Publish(internaldevice.Light, "/light", brightnessCfg, false)
	}); err != nil {
		return internaldevice.Data{}, nil, err
	}

	return l.Build()
}

// addressPort extracts the numeric port from a "host:port" listen
// address, returning 0 if it cannot be parsed (mdns.Register then
// advertises port 0, which the operator's config is responsible for
// avoiding).
func addressPort(address string) int {
	_, portStr, found := strings.Cut(address, ":")
	if !found {
		return 0
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0
	}
	return port
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		os.Exit(1)
	}

	events, err := internaldevice.NewEventPublisher(internaldevice.EventPublisherConfig{
		Host:      cfg.MQTT.Host,
		Port:      cfg.MQTT.Port,
		ClientID:  cfg.MQTT.ClientID,
		TimeoutMs: cfg.MQTT.TimeoutMs,
	})
	if err != nil {
		logging.Log(logging.Error, "failed to start hazard-event telemetry: %v", err)
		os.Exit(1)
	}
	defer events.Close()

	data, registrations, err := buildExampleLight(events)
	if err != nil {
		logging.Log(logging.Error, "failed to build device: %v", err)
		os.Exit(1)
	}

	srv := server.New(data, registrations, "ascot")

	scheme := cfg.Server.Scheme
	if scheme == "" {
		scheme = "http"
	}
	responder, err := mdns.Register(mdns.Config{
		Instance:        cfg.ApiVersion + "-light",
		Domain:          cfg.Discovery.Domain,
		ServiceProtocol: cfg.Discovery.ServiceProtocol,
		TLD:             cfg.Discovery.TLD,
		Port:            addressPort(cfg.Server.Address),
		Scheme:          scheme,
		WellKnownName:   "ascot",
	})
	if err != nil {
		logging.Log(logging.Warn, "mDNS-SD advertisement failed to start: %v, continuing without it", err)
	} else {
		defer responder.Shutdown()
	}

	logging.Log(logging.Info, "Server listening on %s", cfg.Server.Address)
	logging.Log(logging.Error, http.ListenAndServe(cfg.Server.Address, srv).Error())
}
