package domain

import "testing"

func TestExerciseValidate(t *testing.T) {
	tests := []struct {
		name    string
		ex      Exercise
		wantErr bool
	}{
		{
			name: "rep and weight exercise",
			ex:   Exercise{Name: "Barbell Squat", HasReps: true, HasWeightKg: true},
		},
		{
			name: "duration only",
			ex:   Exercise{Name: "Plank", HasDurationS: true},
		},
		{
			name:    "blank name",
			ex:      Exercise{Name: "   ", HasReps: true},
			wantErr: true,
		},
		{
			name:    "no capability flags",
			ex:      Exercise{Name: "Mystery Move"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ex.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExerciseParameterSummary(t *testing.T) {
	ex := Exercise{Name: "Running", HasDurationS: true, HasDistanceM: true}
	if got := ex.ParameterSummary(); got != "duration_s, distance_m" {
		t.Errorf("ParameterSummary() = %q", got)
	}
	none := Exercise{Name: "Ghost"}
	if got := none.ParameterSummary(); got != "no parameters" {
		t.Errorf("ParameterSummary() = %q", got)
	}
}
