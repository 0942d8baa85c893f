package schema

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ABeGood/klim-fit/internal/domain"
)

func TestApplicable(t *testing.T) {
	tests := []struct {
		name     string
		exercise domain.Exercise
		want     []Field
	}{
		{
			name:     "duration only",
			exercise: domain.Exercise{Name: "Plank", HasDurationS: true},
			want:     []Field{FieldDurationS, FieldRestS},
		},
		{
			name:     "reps and weight",
			exercise: domain.Exercise{Name: "Bench Press", HasReps: true, HasWeightKg: true},
			want:     []Field{FieldReps, FieldWeightKg, FieldRestS},
		},
		{
			name:     "duration and distance",
			exercise: domain.Exercise{Name: "Running", HasDurationS: true, HasDistanceM: true},
			want:     []Field{FieldDurationS, FieldDistanceM, FieldRestS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Applicable(&tt.exercise)
			if len(got) != len(tt.want) {
				t.Fatalf("Applicable() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Applicable()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseForm(t *testing.T) {
	tests := []struct {
		name    string
		form    map[string]string
		want    Patch
		wantErr bool
	}{
		{
			name: "numbers coerced",
			form: map[string]string{"reps": "10", "weight_kg": "62.5"},
			want: Patch{FieldReps: float64(10), FieldWeightKg: 62.5},
		},
		{
			name: "blank clears",
			form: map[string]string{"weight_kg": ""},
			want: Patch{FieldWeightKg: nil},
		},
		{
			name: "checkbox on",
			form: map[string]string{"completed": "on"},
			want: Patch{FieldCompleted: true},
		},
		{
			name: "blank checkbox omitted",
			form: map[string]string{"completed": ""},
			want: Patch{},
		},
		{
			name:    "non-numeric text rejected",
			form:    map[string]string{"reps": "ten"},
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			form:    map[string]string{"tempo": "3"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseForm(tt.form)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseForm() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("ParseForm() error type = %T, want *ValidationError", err)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseForm() = %v, want %v", got, tt.want)
			}
			for f, v := range tt.want {
				if got[f] != v {
					t.Errorf("ParseForm()[%s] = %v, want %v", f, got[f], v)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	plank := &domain.Exercise{Name: "Plank", HasDurationS: true}
	bench := &domain.Exercise{Name: "Bench Press", HasReps: true, HasWeightKg: true}

	tests := []struct {
		name     string
		exercise *domain.Exercise
		patch    Patch
		wantErr  string
	}{
		{
			name:     "duration on plank accepted",
			exercise: plank,
			patch:    Patch{FieldDurationS: float64(60)},
		},
		{
			name:     "reps on plank rejected",
			exercise: plank,
			patch:    Patch{FieldReps: float64(10)},
			wantErr:  "not applicable",
		},
		{
			name:     "zero reps rejected",
			exercise: bench,
			patch:    Patch{FieldReps: float64(0)},
			wantErr:  "positive integer",
		},
		{
			name:     "fractional reps rejected",
			exercise: bench,
			patch:    Patch{FieldReps: 2.5},
			wantErr:  "positive integer",
		},
		{
			name:     "zero weight accepted",
			exercise: bench,
			patch:    Patch{FieldWeightKg: float64(0)},
		},
		{
			// strconv.ParseFloat accepts "1e300" and "inf"; neither fits
			// an integer field.
			name:     "huge reps rejected",
			exercise: bench,
			patch:    Patch{FieldReps: 1e300},
			wantErr:  "positive integer",
		},
		{
			name:     "infinite reps rejected",
			exercise: bench,
			patch:    Patch{FieldReps: math.Inf(1)},
			wantErr:  "positive integer",
		},
		{
			name:     "NaN weight rejected",
			exercise: bench,
			patch:    Patch{FieldWeightKg: math.NaN()},
			wantErr:  "non-negative number",
		},
		{
			name:     "infinite weight rejected",
			exercise: bench,
			patch:    Patch{FieldWeightKg: math.Inf(1)},
			wantErr:  "non-negative number",
		},
		{
			name:     "negative rest rejected",
			exercise: bench,
			patch:    Patch{FieldRestS: float64(-5)},
			wantErr:  "non-negative integer",
		},
		{
			name:     "clear weight accepted",
			exercise: bench,
			patch:    Patch{FieldWeightKg: nil},
		},
		{
			name:     "clear completed rejected",
			exercise: bench,
			patch:    Patch{FieldCompleted: nil},
			wantErr:  "cannot be cleared",
		},
		{
			name:     "completed bool accepted",
			exercise: bench,
			patch:    Patch{FieldCompleted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.exercise, tt.patch)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError %q", err, tt.wantErr)
			}
			if !strings.Contains(ve.Reason, tt.wantErr) {
				t.Errorf("Validate() reason = %q, want substring %q", ve.Reason, tt.wantErr)
			}
		})
	}
}
