// Package schema resolves which performance parameters may be set on an
// exercise set, and validates edit payloads against that resolution before
// anything reaches persistence. Field types are declared here once and drive
// both input rendering and payload parsing; nothing is guessed from the
// shape of incoming text.
package schema

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ABeGood/klim-fit/internal/domain"
)

// Field names a settable attribute of an exercise set. The values double as
// storage field names.
type Field string

const (
	FieldReps      Field = "reps"
	FieldWeightKg  Field = "weight_kg"
	FieldDurationS Field = "duration_s"
	FieldDistanceM Field = "distance_m"
	FieldRestS     Field = "rest_s"
	FieldCompleted Field = "completed"
)

// Kind is the declared value type of a field.
type Kind int

const (
	KindPositiveInt Kind = iota
	KindNonNegativeInt
	KindNonNegativeNumber
	KindBool
)

var fieldKinds = map[Field]Kind{
	FieldReps:      KindPositiveInt,
	FieldWeightKg:  KindNonNegativeNumber,
	FieldDurationS: KindPositiveInt,
	FieldDistanceM: KindNonNegativeNumber,
	FieldRestS:     KindNonNegativeInt,
	FieldCompleted: KindBool,
}

// KindOf returns the declared kind for a known field.
func KindOf(f Field) (Kind, bool) {
	k, ok := fieldKinds[f]
	return k, ok
}

// ValidationError reports a payload rejected before any persistence call.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Applicable returns the performance fields legal for the given exercise,
// derived purely from its capability flags. Rest is always included,
// independent of exercise type.
func Applicable(ex *domain.Exercise) []Field {
	var fields []Field
	if ex.HasReps {
		fields = append(fields, FieldReps)
	}
	if ex.HasWeightKg {
		fields = append(fields, FieldWeightKg)
	}
	if ex.HasDurationS {
		fields = append(fields, FieldDurationS)
	}
	if ex.HasDistanceM {
		fields = append(fields, FieldDistanceM)
	}
	return append(fields, FieldRestS)
}

// IsApplicable reports whether f may be set on a set of the given exercise.
// Completed is always settable on updates alongside the applicable set.
func IsApplicable(ex *domain.Exercise, f Field) bool {
	switch f {
	case FieldReps:
		return ex.HasReps
	case FieldWeightKg:
		return ex.HasWeightKg
	case FieldDurationS:
		return ex.HasDurationS
	case FieldDistanceM:
		return ex.HasDistanceM
	case FieldRestS, FieldCompleted:
		return true
	}
	return false
}

// Patch is a validated-or-validatable set of field edits. A nil value clears
// the field; numeric fields carry float64, completed carries bool.
type Patch map[Field]interface{}

// Fields converts the patch to the persistence map shape.
func (p Patch) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for f, v := range p {
		out[string(f)] = v
	}
	return out
}

// ParseForm coerces submitted text values into a typed Patch. Blank text
// becomes nil (clear the field); completed accepts checkbox-style values.
// An unknown field or a value not matching its declared kind is a
// ValidationError, never a silent drop or a guess.
func ParseForm(form map[string]string) (Patch, error) {
	patch := make(Patch, len(form))
	for name, raw := range form {
		f := Field(name)
		kind, ok := fieldKinds[f]
		if !ok {
			return nil, &ValidationError{Field: f, Reason: "unknown field"}
		}
		if raw == "" {
			if kind == KindBool {
				continue // blank checkbox means "not named"
			}
			patch[f] = nil
			continue
		}
		switch kind {
		case KindBool:
			switch raw {
			case "true", "1", "on":
				patch[f] = true
			case "false", "0", "off":
				patch[f] = false
			default:
				return nil, &ValidationError{Field: f, Reason: "not a boolean"}
			}
		default:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &ValidationError{Field: f, Reason: "not a number"}
			}
			patch[f] = v
		}
	}
	return patch, nil
}

// Validate checks a patch against the exercise's applicable fields and each
// field's declared bounds. The whole patch is rejected on the first offense;
// partial application is never allowed.
func Validate(ex *domain.Exercise, patch Patch) error {
	for f, v := range patch {
		kind, ok := fieldKinds[f]
		if !ok {
			return &ValidationError{Field: f, Reason: "unknown field"}
		}
		if !IsApplicable(ex, f) {
			return &ValidationError{Field: f, Reason: fmt.Sprintf("not applicable to exercise %q", ex.Name)}
		}
		if v == nil {
			if kind == KindBool {
				return &ValidationError{Field: f, Reason: "cannot be cleared"}
			}
			continue
		}
		switch kind {
		case KindBool:
			if _, ok := v.(bool); !ok {
				return &ValidationError{Field: f, Reason: "not a boolean"}
			}
		case KindPositiveInt:
			n, err := intValue(v)
			if err != nil || n < 1 {
				return &ValidationError{Field: f, Reason: "must be a positive integer"}
			}
		case KindNonNegativeInt:
			n, err := intValue(v)
			if err != nil || n < 0 {
				return &ValidationError{Field: f, Reason: "must be a non-negative integer"}
			}
		case KindNonNegativeNumber:
			n, ok := numberValue(v)
			if !ok || n < 0 {
				return &ValidationError{Field: f, Reason: "must be a non-negative number"}
			}
		}
	}
	return nil
}

func intValue(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not integral")
		}
		// The float-to-int conversion is implementation-defined out of
		// range, so bound it before converting. int32 covers every
		// meaningful reps, duration or rest value.
		if math.IsInf(n, 0) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, fmt.Errorf("out of range")
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("not a number")
}

func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		// NaN and the infinities would pass the bounds checks and poison
		// the stored document.
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
