// Package deviceinfo implements DeviceInfo and its energy/economy
// subtrees: EnergyClass, EnergyEfficiency, CarbonFootprint,
// WaterUseEfficiency, Energy, Cost, Roi, Economy.
package deviceinfo

import (
	"encoding/json"
	"fmt"
)

// EnergyClass is the closed 10-value EU-style energy label.
type EnergyClass int

const (
	APlusPlusPlus EnergyClass = iota
	APlusPlus
	APlus
	A
	B
	C
	D
	E
	F
	G
)

var energyClassNames = [...]string{
	APlusPlusPlus: "A+++",
	APlusPlus:     "A++",
	APlus:         "A+",
	A:             "A",
	B:             "B",
	C:             "C",
	D:             "D",
	E:             "E",
	F:             "F",
	G:             "G",
}

func (c EnergyClass) String() string { return energyClassNames[c] }

func (c EnergyClass) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *EnergyClass) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for class, name := range energyClassNames {
		if name == s {
			*c = EnergyClass(class)
			return nil
		}
	}
	return fmt.Errorf("deviceinfo: unknown energy class %q", s)
}

func clampPercentage(p int) int8 {
	switch {
	case p >= 100:
		return 100
	case p <= -100:
		return -100
	default:
		return int8(p)
	}
}

// EnergyEfficiency pairs a clamped [-100, 100] percentage with an
// EnergyClass.
type EnergyEfficiency struct {
	Percentage  int8        `json:"percentage"`
	EnergyClass EnergyClass `json:"energy-class"`
}

// NewEnergyEfficiency clamps percentage into [-100, 100] before storing
// it, per spec invariant 2.
func NewEnergyEfficiency(percentage int, class EnergyClass) EnergyEfficiency {
	return EnergyEfficiency{Percentage: clampPercentage(percentage), EnergyClass: class}
}

// DecimalPercentage returns the percentage as a fraction, e.g. 42 -> 0.42.
func (e EnergyEfficiency) DecimalPercentage() float64 { return float64(e.Percentage) / 100 }

// CarbonFootprint pairs a clamped [-100, 100] percentage with an
// EnergyClass.
type CarbonFootprint struct {
	Percentage  int8        `json:"percentage"`
	EnergyClass EnergyClass `json:"energy-class"`
}

// NewCarbonFootprint clamps percentage into [-100, 100].
func NewCarbonFootprint(percentage int, class EnergyClass) CarbonFootprint {
	return CarbonFootprint{Percentage: clampPercentage(percentage), EnergyClass: class}
}

func (c CarbonFootprint) DecimalPercentage() float64 { return float64(c.Percentage) / 100 }

// WaterUseEfficiency carries up to three optional water-use metrics.
type WaterUseEfficiency struct {
	GPP                    *float64 `json:"gross-primary-productivity,omitempty"`
	PenmanMonteithEquation *float64 `json:"penman-monteith-equation,omitempty"`
	WER                    *float64 `json:"water-equivalent-ratio,omitempty"`
}

func f64ptr(v float64) *float64 { return &v }

func NewWaterUseEfficiencyWithGPP(gpp float64) WaterUseEfficiency {
	return WaterUseEfficiency{GPP: f64ptr(gpp)}
}

func NewWaterUseEfficiencyWithPenmanMonteithEquation(v float64) WaterUseEfficiency {
	return WaterUseEfficiency{PenmanMonteithEquation: f64ptr(v)}
}

func NewWaterUseEfficiencyWithWER(v float64) WaterUseEfficiency {
	return WaterUseEfficiency{WER: f64ptr(v)}
}

func (w WaterUseEfficiency) WithGPP(gpp float64) WaterUseEfficiency {
	w.GPP = f64ptr(gpp)
	return w
}

func (w WaterUseEfficiency) WithPenmanMonteithEquation(v float64) WaterUseEfficiency {
	w.PenmanMonteithEquation = f64ptr(v)
	return w
}

func (w WaterUseEfficiency) WithWER(v float64) WaterUseEfficiency {
	w.WER = f64ptr(v)
	return w
}

// Energy carries optional sets of efficiency/footprint data and a
// single optional water-use metric block.
type Energy struct {
	EnergyEfficiencies  []EnergyEfficiency  `json:"energy-efficiencies,omitempty"`
	CarbonFootprints    []CarbonFootprint   `json:"carbon-footprints,omitempty"`
	WaterUseEfficiency  *WaterUseEfficiency `json:"water-use-efficiency,omitempty"`
}

// IsEmpty reports whether Energy carries no data at all.
func (e Energy) IsEmpty() bool {
	return len(e.EnergyEfficiencies) == 0 && len(e.CarbonFootprints) == 0 && e.WaterUseEfficiency == nil
}

func (e Energy) WithEnergyEfficiencies(v []EnergyEfficiency) Energy {
	e.EnergyEfficiencies = v
	return e
}

func (e Energy) WithCarbonFootprints(v []CarbonFootprint) Energy {
	e.CarbonFootprints = v
	return e
}

func (e Energy) WithWaterUseEfficiency(v WaterUseEfficiency) Energy {
	e.WaterUseEfficiency = &v
	return e
}
