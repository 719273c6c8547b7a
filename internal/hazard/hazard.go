// Package hazard defines the closed taxonomy of side-effects that a
// device route may carry, and the categories that group them.
package hazard

import (
	"encoding/json"
	"fmt"
)

// Hazard is a declared, user-visible side-effect class of invoking a
// route. The set is closed: id and variant are in bijection.
type Hazard uint16

const (
	AirPoisoning Hazard = iota
	Asphyxia
	AudioVideoRecordAndStore
	AudioVideoStream
	ElectricEnergyConsumption
	Explosion
	FireHazard
	GasConsumption
	LogEnergyConsumption
	LogUsageTime
	PaySubscriptionFee
	PowerOutage
	PowerSurge
	RecordIssuedCommands
	RecordUserPreferences
	SpendMoney
	SpoiledFood
	TakeDeviceScreenshots
	TakePictures
	UnauthorisedPhysicalAccess
	WaterConsumption
	WaterFlooding

	hazardCount
)

var names = [hazardCount]string{
	AirPoisoning:               "Air Poisoning",
	Asphyxia:                   "Asphyxia",
	AudioVideoRecordAndStore:   "Audio Video Record And Store",
	AudioVideoStream:           "Audio Video Stream",
	ElectricEnergyConsumption:  "Electric Energy Consumption",
	Explosion:                  "Explosion",
	FireHazard:                 "Fire Hazard",
	GasConsumption:             "Gas Consumption",
	LogEnergyConsumption:       "Log Energy Consumption",
	LogUsageTime:               "Log Usage Time",
	PaySubscriptionFee:         "Pay Subscription Fee",
	PowerOutage:                "Power Outage",
	PowerSurge:                 "Power Surge",
	RecordIssuedCommands:       "Record Issued Commands",
	RecordUserPreferences:      "Record User Preferences",
	SpendMoney:                 "Spend Money",
	SpoiledFood:                "Spoiled Food",
	TakeDeviceScreenshots:      "Take Device Screenshots",
	TakePictures:               "Take Pictures",
	UnauthorisedPhysicalAccess: "Unauthorised Physical Access",
	WaterConsumption:           "Water Consumption",
	WaterFlooding:              "Water Flooding",
}

var descriptions = [hazardCount]string{
	AirPoisoning:               "The execution may release toxic gases.",
	Asphyxia:                   "The execution may cause oxygen deficiency by gaseous substances.",
	AudioVideoRecordAndStore:   "The execution authorises the app to record and save a video with audio on persistent storage.",
	AudioVideoStream:           "The execution authorises the app to obtain a video stream with audio.",
	ElectricEnergyConsumption:  "The execution enables a device that consumes electricity.",
	Explosion:                  "The execution may cause an explosion.",
	FireHazard:                 "The execution may cause fire.",
	GasConsumption:             "The execution enables a device that consumes gas.",
	LogEnergyConsumption:       "The execution authorises the app to get and save information about the app's energy impact on the device the app runs on.",
	LogUsageTime:               "The execution authorises the app to get and save information about the app's duration of use.",
	PaySubscriptionFee:         "The execution authorises the app to use payment information and make a periodic payment.",
	PowerOutage:                "The execution may cause an interruption in the supply of electricity.",
	PowerSurge:                 "The execution may lead to exposure to high voltages.",
	RecordIssuedCommands:       "The execution authorises the app to get and save user inputs.",
	RecordUserPreferences:      "The execution authorises the app to get and save information about the user's preferences.",
	SpendMoney:                 "The execution authorises the app to use payment information and make a payment transaction.",
	SpoiledFood:                "The execution may lead to rotten food.",
	TakeDeviceScreenshots:      "The execution authorises the app to read the display output and take screenshots of it.",
	TakePictures:               "The execution authorises the app to use a camera and take photos.",
	UnauthorisedPhysicalAccess: "The execution disables a protection mechanism and unauthorised individuals may physically enter home.",
	WaterConsumption:           "The execution enables a device that consumes water.",
	WaterFlooding:              "The execution allows water usage which may lead to flood.",
}

var categories = [hazardCount]Category{
	AirPoisoning:               Safety,
	Asphyxia:                   Safety,
	AudioVideoRecordAndStore:   Privacy,
	AudioVideoStream:           Privacy,
	ElectricEnergyConsumption:  Financial,
	Explosion:                  Safety,
	FireHazard:                 Safety,
	GasConsumption:             Financial,
	LogEnergyConsumption:       Privacy,
	LogUsageTime:               Privacy,
	PaySubscriptionFee:         Financial,
	PowerOutage:                Safety,
	PowerSurge:                 Safety,
	RecordIssuedCommands:       Privacy,
	RecordUserPreferences:      Privacy,
	SpendMoney:                 Financial,
	SpoiledFood:                Safety,
	TakeDeviceScreenshots:      Privacy,
	TakePictures:               Privacy,
	UnauthorisedPhysicalAccess: Safety,
	WaterConsumption:           Financial,
	WaterFlooding:              Safety,
}

// ID returns the hazard's stable wire identifier.
func (h Hazard) ID() uint16 { return uint16(h) }

// Name returns the hazard's human-readable name.
func (h Hazard) Name() string { return names[h] }

// Description returns the hazard's human-readable description.
func (h Hazard) Description() string { return descriptions[h] }

// Category returns the single category a hazard belongs to.
func (h Hazard) Category() Category { return categories[h] }

func (h Hazard) String() string { return h.Name() }

// Valid reports whether h is one of the declared hazard variants.
func (h Hazard) Valid() bool { return h < hazardCount }

// FromID returns the Hazard with the given id. ok is false when id is
// outside the declared range 0..21.
func FromID(id uint16) (h Hazard, ok bool) {
	if id >= uint16(hazardCount) {
		return 0, false
	}
	return Hazard(id), true
}

// Category is the coarse grouping of a Hazard.
type Category int

const (
	Financial Category = iota
	Privacy
	Safety
)

var categoryNames = [...]string{
	Financial: "Financial",
	Privacy:   "Privacy",
	Safety:    "Safety",
}

var categoryDescriptions = [...]string{
	Financial: "Category which includes all the financial-related hazards.",
	Privacy:   "Category which includes all the privacy-related hazards.",
	Safety:    "Category which includes all the safety-related hazards.",
}

func (c Category) Name() string        { return categoryNames[c] }
func (c Category) Description() string { return categoryDescriptions[c] }
func (c Category) String() string      { return c.Name() }

// Hazards returns every hazard belonging to category c, in ascending id
// order.
func (c Category) Hazards() []Hazard {
	var out []Hazard
	for h := Hazard(0); h < hazardCount; h++ {
		if h.Category() == c {
			out = append(out, h)
		}
	}
	return out
}

// MarshalJSON renders a Hazard as its wire {id,name,description,category}
// shape rather than the bare integer, matching the reference
// implementation's HazardData wire contract.
func (h Hazard) MarshalJSON() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("hazard: id %d is not a declared hazard", uint16(h))
	}
	data := wireData{
		ID:          h.ID(),
		Name:        h.Name(),
		Description: h.Description(),
		Category: wireCategory{
			Name:        h.Category().Name(),
			Description: h.Category().Description(),
		},
	}
	return json.Marshal(data)
}

type wireCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type wireData struct {
	ID          uint16       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    wireCategory `json:"category"`
}
