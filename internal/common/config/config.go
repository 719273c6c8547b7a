// Package config defines the YAML configuration shape loaded by a
// device server at startup: server bind address, discovery defaults,
// and the per-device configuration blocks the device packages
// unmarshal on their own.
package config

// Config is the top-level YAML document, loaded from the path named by
// the ASCOTCONFIG environment variable.
type Config struct {
	ApiVersion string     `yaml:"apiVersion"`
	Server     Server     `yaml:"server"`
	MQTT       MQTT       `yaml:"mqtt"`
	Devices    []Devices  `yaml:"devices"`
	Discovery  Discovery  `yaml:"discovery"`
}

// Server configures the HTTP listener a device's routes are mounted on.
type Server struct {
	Address string `yaml:"address"`
	Scheme  string `yaml:"scheme"`
}

// MQTT configures the optional hazard-event telemetry publisher.
// Host == "" disables telemetry entirely.
type MQTT struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	ClientID  string `yaml:"clientId"`
	TimeoutMs uint   `yaml:"timeoutMs"`
}

// Devices is a single device's type tag plus its own free-form
// configuration block, unmarshaled again by that device's package.
type Devices struct {
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config"`
}

// Discovery configures a controller's default mDNS-SD browse
// parameters.
type Discovery struct {
	Domain          string   `yaml:"domain"`
	ServiceProtocol string   `yaml:"serviceProtocol"`
	TLD             string   `yaml:"tld"`
	TimeoutMs       uint     `yaml:"timeoutMs"`
	DisabledNames   []string `yaml:"disabledNames"`
	Interface       string   `yaml:"interface"`
}
