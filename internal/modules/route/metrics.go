// README: Emissions and efficiency figures derived from a route.
package route

import "math"

// carCO2PerPassengerKm is the per-passenger emission factor of an average
// private car, used as the baseline the shared ride is compared against.
const carCO2PerPassengerKm = 0.21

// Annotate returns a copy of r with CO₂ savings and efficiency filled in.
// Routes are immutable once published, so the input is never mutated.
//
//	carEquivalent = passengers × distance × 0.21
//	vehicle       = distance × class factor
//	saved         = max(0, carEquivalent − vehicle)
//	efficiency    = min(100, round(passengers ⁄ capacity × 100))
func Annotate(r Route) Route {
	carEquivalent := float64(r.Passengers) * r.DistanceKm * carCO2PerPassengerKm
	vehicle := r.DistanceKm * r.Class.CO2PerKm

	r.CO2SavedKg = math.Max(0, carEquivalent-vehicle)

	eff := 0
	if r.Class.Capacity > 0 {
		eff = int(math.Round(float64(r.Passengers) / float64(r.Class.Capacity) * 100.0))
	}
	if eff > 100 {
		eff = 100
	}
	r.Efficiency = eff

	return r
}
