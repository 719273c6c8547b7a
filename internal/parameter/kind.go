// Package parameter implements the schema/value tagged unions used to
// describe and validate a route's input parameters, and the
// insertion-ordered maps that carry them.
package parameter

import (
	"encoding/json"
	"fmt"
	"math"
)

// Shape identifies a ParameterKind or ParameterValue by its wire shape,
// independent of any range/step metadata. U64 and RangeU64 both map to
// ShapeU64; F64 and RangeF64 both map to ShapeF64.
type Shape int

const (
	ShapeBool Shape = iota
	ShapeU8
	ShapeU16
	ShapeU32
	ShapeU64
	ShapeF32
	ShapeF64
	ShapeCharsSequence
	ShapeByteStream
)

func (s Shape) String() string {
	switch s {
	case ShapeBool:
		return "bool"
	case ShapeU8:
		return "u8"
	case ShapeU16:
		return "u16"
	case ShapeU32:
		return "u32"
	case ShapeU64:
		return "u64"
	case ShapeF32:
		return "f32"
	case ShapeF64:
		return "f64"
	case ShapeCharsSequence:
		return "String"
	case ShapeByteStream:
		return "bytes"
	default:
		return "unknown"
	}
}

// Kind is a tag identifying which ParameterKind variant is present.
type Kind int

const (
	KindBool Kind = iota
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindRangeU64
	KindRangeF64
	KindCharsSequence
	KindByteStream
)

// ParameterKind describes the declared schema of one route parameter.
// Exactly the fields relevant to Tag are meaningful; the zero value of
// the others is ignored.
type ParameterKind struct {
	Tag Kind

	DefaultBool bool
	DefaultStr  string // CharsSequence default
	Length      uint64 // CharsSequence length

	DefaultU64 uint64
	MinU64     uint64
	MaxU64     uint64

	DefaultF64 float64
	MinF64     float64
	MaxF64     float64
	Step       float64

	// RangeU64/RangeF64 step (integer ranges use StepU64).
	StepU64 uint64
}

// Shape returns the wire shape this kind is validated against.
func (k ParameterKind) Shape() Shape {
	switch k.Tag {
	case KindBool:
		return ShapeBool
	case KindU8:
		return ShapeU8
	case KindU16:
		return ShapeU16
	case KindU32:
		return ShapeU32
	case KindU64, KindRangeU64:
		return ShapeU64
	case KindF32:
		return ShapeF32
	case KindF64, KindRangeF64:
		return ShapeF64
	case KindCharsSequence:
		return ShapeCharsSequence
	case KindByteStream:
		return ShapeByteStream
	default:
		return ShapeBool
	}
}

// Bool builds a Bool parameter kind.
func Bool(def bool) ParameterKind { return ParameterKind{Tag: KindBool, DefaultBool: def} }

// U8 builds a U8 parameter kind with bounds. An unbounded min/max is
// expressed as (math.MaxUint8, 0) per the sentinel convention below.
func U8(def, min, max uint8) ParameterKind {
	return ParameterKind{Tag: KindU8, DefaultU64: uint64(def), MinU64: uint64(min), MaxU64: uint64(max)}
}

// U8Unbounded builds a U8 kind that accepts any value.
func U8Unbounded(def uint8) ParameterKind { return U8(def, math.MaxUint8, 0) }

func U16(def, min, max uint16) ParameterKind {
	return ParameterKind{Tag: KindU16, DefaultU64: uint64(def), MinU64: uint64(min), MaxU64: uint64(max)}
}

func U16Unbounded(def uint16) ParameterKind { return U16(def, math.MaxUint16, 0) }

func U32(def, min, max uint32) ParameterKind {
	return ParameterKind{Tag: KindU32, DefaultU64: uint64(def), MinU64: uint64(min), MaxU64: uint64(max)}
}

func U32Unbounded(def uint32) ParameterKind { return U32(def, math.MaxUint32, 0) }

func U64(def, min, max uint64) ParameterKind {
	return ParameterKind{Tag: KindU64, DefaultU64: def, MinU64: min, MaxU64: max}
}

func U64Unbounded(def uint64) ParameterKind { return U64(def, math.MaxUint64, 0) }

func F32(def float32, min, max, step float32) ParameterKind {
	return ParameterKind{Tag: KindF32, DefaultF64: float64(def), MinF64: float64(min), MaxF64: float64(max), Step: float64(step)}
}

func F32Unbounded(def float32) ParameterKind {
	return F32(def, -math.MaxFloat32, math.MaxFloat32, 0)
}

func F64(def, min, max, step float64) ParameterKind {
	return ParameterKind{Tag: KindF64, DefaultF64: def, MinF64: min, MaxF64: max, Step: step}
}

func F64Unbounded(def float64) ParameterKind {
	return F64(def, -math.MaxFloat64, math.MaxFloat64, 0)
}

// RangeU64 builds a bounded u64 range parameter.
func RangeU64(min, max, step, def uint64) ParameterKind {
	return ParameterKind{Tag: KindRangeU64, MinU64: min, MaxU64: max, StepU64: step, DefaultU64: def}
}

// RangeF64 builds a bounded f64 range parameter.
func RangeF64(min, max, step, def float64) ParameterKind {
	return ParameterKind{Tag: KindRangeF64, MinF64: min, MaxF64: max, Step: step, DefaultF64: def}
}

// CharsSequence builds a character-sequence parameter kind.
func CharsSequence(def string, length uint64) ParameterKind {
	return ParameterKind{Tag: KindCharsSequence, DefaultStr: def, Length: length}
}

// ByteStream builds a byte-stream parameter kind.
func ByteStream() ParameterKind { return ParameterKind{Tag: KindByteStream} }

// DefaultAsString renders the kind's default value the way the wire
// contract expects it to be rendered in a GET path segment: integers as
// plain decimal, floats using Go's shortest round-trip form (matching
// Rust's Display for f32/f64, e.g. 0 renders as "0" not "0.0").
func (k ParameterKind) DefaultAsString() string {
	switch k.Shape() {
	case ShapeBool:
		if k.DefaultBool {
			return "true"
		}
		return "false"
	case ShapeU8, ShapeU16, ShapeU32, ShapeU64:
		return fmt.Sprintf("%d", k.DefaultU64)
	case ShapeF32, ShapeF64:
		return formatFloat(k.DefaultF64)
	case ShapeCharsSequence:
		return k.DefaultStr
	default:
		return ""
	}
}

// formatFloat renders a float64 the way Rust's f64 Display impl does:
// no trailing ".0" for integral values, shortest round-trip otherwise.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return fmt.Sprintf("%d", int64(f))
	}
	s := fmt.Sprintf("%g", f)
	return s
}

// --- JSON wire encoding -----------------------------------------------
//
// Variant names use PascalCase discriminators, matching the reference
// serde(tag = "type")-free internally-tagged enum encoding used
// throughout the source. Bounded numeric kinds omit min/max when they
// carry the "unset" sentinel (min == type max, max == type min) so the
// wire form matches the reference implementation bit for bit.

type wireParameterKind struct {
	Type    string  `json:"type"`
	Default any     `json:"default,omitempty"`
	Min     *uint64 `json:"min,omitempty"`
	Max     *uint64 `json:"max,omitempty"`
	MinF    *float64 `json:"min_f,omitempty"`
	MaxF    *float64 `json:"max_f,omitempty"`
	Step    *float64 `json:"step,omitempty"`
	StepU   *uint64  `json:"step_u,omitempty"`
	Length  *uint64  `json:"length,omitempty"`
}

func isUMax(v, typeMax uint64) bool { return v == typeMax }
func isUMin(v uint64) bool          { return v == 0 }

func (k ParameterKind) MarshalJSON() ([]byte, error) {
	w := wireParameterKind{}
	switch k.Tag {
	case KindBool:
		w.Type = "Bool"
		w.Default = k.DefaultBool
	case KindU8:
		w.Type = "U8"
		w.Default = k.DefaultU64
		setUBounds(&w, k.MinU64, k.MaxU64, math.MaxUint8)
	case KindU16:
		w.Type = "U16"
		w.Default = k.DefaultU64
		setUBounds(&w, k.MinU64, k.MaxU64, math.MaxUint16)
	case KindU32:
		w.Type = "U32"
		w.Default = k.DefaultU64
		setUBounds(&w, k.MinU64, k.MaxU64, math.MaxUint32)
	case KindU64:
		w.Type = "U64"
		w.Default = k.DefaultU64
		setUBounds(&w, k.MinU64, k.MaxU64, math.MaxUint64)
	case KindF32, KindF64:
		if k.Tag == KindF32 {
			w.Type = "F32"
		} else {
			w.Type = "F64"
		}
		w.Default = k.DefaultF64
		if !isFMax(k.MinF64) {
			m := k.MinF64
			w.MinF = &m
		}
		if !isFMin(k.MaxF64) {
			m := k.MaxF64
			w.MaxF = &m
		}
		if k.Step != 0 {
			s := k.Step
			w.Step = &s
		}
	case KindRangeU64:
		w.Type = "RangeU64"
		min, max, step, def := k.MinU64, k.MaxU64, k.StepU64, k.DefaultU64
		w.Min, w.Max, w.StepU = &min, &max, &step
		w.Default = def
	case KindRangeF64:
		w.Type = "RangeF64"
		min, max, step, def := k.MinF64, k.MaxF64, k.Step, k.DefaultF64
		w.MinF, w.MaxF, w.Step = &min, &max, &step
		w.Default = def
	case KindCharsSequence:
		w.Type = "CharsSequence"
		w.Default = k.DefaultStr
		l := k.Length
		w.Length = &l
	case KindByteStream:
		w.Type = "ByteStream"
	}
	return json.Marshal(w)
}

func setUBounds(w *wireParameterKind, min, max, typeMax uint64) {
	if !isUMax(min, typeMax) {
		m := min
		w.Min = &m
	}
	if !isUMin(max) {
		m := max
		w.Max = &m
	}
}

func isFMax(v float64) bool { return v == math.MaxFloat64 || v == math.MaxFloat32 }
func isFMin(v float64) bool { return v == -math.MaxFloat64 || v == -math.MaxFloat32 }

func (k *ParameterKind) UnmarshalJSON(b []byte) error {
	var w wireParameterKind
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	switch w.Type {
	case "Bool":
		k.Tag = KindBool
		if bv, ok := w.Default.(bool); ok {
			k.DefaultBool = bv
		}
	case "U8", "U16", "U32", "U64":
		k.Tag = map[string]Kind{"U8": KindU8, "U16": KindU16, "U32": KindU32, "U64": KindU64}[w.Type]
		k.DefaultU64 = uint64(asFloat(w.Default))
		typeMax := map[string]uint64{"U8": math.MaxUint8, "U16": math.MaxUint16, "U32": math.MaxUint32, "U64": math.MaxUint64}[w.Type]
		k.MinU64 = typeMax
		if w.Min != nil {
			k.MinU64 = *w.Min
		}
		k.MaxU64 = 0
		if w.Max != nil {
			k.MaxU64 = *w.Max
		}
	case "F32", "F64":
		if w.Type == "F32" {
			k.Tag = KindF32
		} else {
			k.Tag = KindF64
		}
		k.DefaultF64 = asFloat(w.Default)
		k.MinF64 = math.MaxFloat64
		if w.MinF != nil {
			k.MinF64 = *w.MinF
		}
		k.MaxF64 = -math.MaxFloat64
		if w.MaxF != nil {
			k.MaxF64 = *w.MaxF
		}
		if w.Step != nil {
			k.Step = *w.Step
		}
	case "RangeU64":
		k.Tag = KindRangeU64
		if w.Min != nil {
			k.MinU64 = *w.Min
		}
		if w.Max != nil {
			k.MaxU64 = *w.Max
		}
		if w.StepU != nil {
			k.StepU64 = *w.StepU
		}
		k.DefaultU64 = uint64(asFloat(w.Default))
	case "RangeF64":
		k.Tag = KindRangeF64
		if w.MinF != nil {
			k.MinF64 = *w.MinF
		}
		if w.MaxF != nil {
			k.MaxF64 = *w.MaxF
		}
		if w.Step != nil {
			k.Step = *w.Step
		}
		k.DefaultF64 = asFloat(w.Default)
	case "CharsSequence":
		k.Tag = KindCharsSequence
		if sv, ok := w.Default.(string); ok {
			k.DefaultStr = sv
		}
		if w.Length != nil {
			k.Length = *w.Length
		}
	case "ByteStream":
		k.Tag = KindByteStream
	default:
		return fmt.Errorf("parameter: unknown ParameterKind variant %q", w.Type)
	}
	return nil
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	default:
		return 0
	}
}
