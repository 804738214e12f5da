package route

import (
	"math"
	"testing"
)

func TestAnnotateCO2(t *testing.T) {
	minibus := Classes[1]

	r := Annotate(Route{Passengers: 5, DistanceKm: 40, Class: minibus})

	// 5 pax × 40 km × 0.21 = 42 kg by car; 40 km × 0.35 = 14 kg shared.
	want := 42.0 - 14.0
	if math.Abs(r.CO2SavedKg-want) > 0.0001 {
		t.Errorf("CO2SavedKg = %f, want %f", r.CO2SavedKg, want)
	}
}

func TestAnnotateCO2NeverNegative(t *testing.T) {
	// One passenger over a long distance in a coach emits more than a car
	// would; savings clamp to zero rather than going negative.
	coach := Classes[2]
	r := Annotate(Route{Passengers: 1, DistanceKm: 100, Class: coach})
	if r.CO2SavedKg < 0 {
		t.Errorf("CO2SavedKg = %f, must not be negative", r.CO2SavedKg)
	}
	if r.CO2SavedKg != 0 {
		t.Errorf("CO2SavedKg = %f, want clamp to 0", r.CO2SavedKg)
	}
}

func TestAnnotateEfficiency(t *testing.T) {
	tests := []struct {
		name       string
		passengers int
		class      VehicleClass
		want       int
	}{
		{"half full minibus", 4, Classes[1], 50},
		{"full shuttle", 4, Classes[0], 100},
		{"rounding", 5, Classes[2], 31}, // 5/16 = 31.25 → 31
		{"over capacity caps at 100", 20, Classes[2], 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Annotate(Route{Passengers: tt.passengers, Class: tt.class})
			if r.Efficiency != tt.want {
				t.Errorf("Efficiency = %d, want %d", r.Efficiency, tt.want)
			}
		})
	}
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	in := Route{Passengers: 5, DistanceKm: 40, Class: Classes[1]}
	_ = Annotate(in)
	if in.CO2SavedKg != 0 || in.Efficiency != 0 {
		t.Error("Annotate mutated its input")
	}
}

func TestClassFor(t *testing.T) {
	tests := []struct {
		passengers int
		wantName   string
		wantOver   bool
	}{
		{1, "shuttle", false},
		{4, "shuttle", false},
		{5, "minibus", false},
		{8, "minibus", false},
		{9, "coach", false},
		{16, "coach", false},
		{17, "coach", true},
	}
	for _, tt := range tests {
		c, over := ClassFor(tt.passengers)
		if c.Name != tt.wantName || over != tt.wantOver {
			t.Errorf("ClassFor(%d) = (%s, %v), want (%s, %v)",
				tt.passengers, c.Name, over, tt.wantName, tt.wantOver)
		}
	}
}
