package calculator

import (
	"context"
	"fmt"
)

// carAnnualFootprint returns annual CO2 (lbs) and fuel cost for a gasoline
// car driven the given miles at the given mpg.
func carAnnualFootprint(ctx context.Context, r *Resolver, locs []string, miles, mpg float64) (co2 float64, cost float64) {
	if mpg <= 0 {
		mpg = r.DefaultOr(ctx, locs, "car_typical_mpg", 25)
	}
	gallons := miles / mpg
	co2 = gallons * r.DefaultOr(ctx, locs, "gasoline_lbs_co2_per_gallon", 19.6)
	cost = gallons * r.DefaultOr(ctx, locs, "gasoline_price_per_gallon", 3.10)
	return co2, cost
}

// evAnnualFootprint returns the annual CO2 and electricity cost of driving
// the given miles in an electric car.
func evAnnualFootprint(ctx context.Context, r *Resolver, locs []string, miles float64) (co2 float64, cost float64) {
	kwhPerMile := r.DefaultOr(ctx, locs, "ev_kwh_per_mile", 0.3)
	kwh := miles * kwhPerMile
	co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	return co2, cost
}

func evalReplaceCar(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "replace_car") {
		return zeroImpact("No impact without replacing your car with a more efficient one.")
	}
	locs := a.Localities()
	miles := a.Float("car_annual_miles", 12000)
	mpg := a.Float("car_mpg", 25)
	oldCO2, oldCost := carAnnualFootprint(ctx, r, locs, miles, mpg)
	newType := a.String("new_car_type", "Electric")
	var newCO2, newCost float64
	switch newType {
	case "Electric":
		newCO2, newCost = evAnnualFootprint(ctx, r, locs, miles)
	case "Plug-in Hybrid":
		evFrac := r.DefaultOr(ctx, locs, "phev_electric_fraction", 0.6)
		eCO2, eCost := evAnnualFootprint(ctx, r, locs, miles*evFrac)
		gCO2, gCost := carAnnualFootprint(ctx, r, locs, miles*(1-evFrac), r.DefaultOr(ctx, locs, "hybrid_mpg", 50))
		newCO2, newCost = eCO2+gCO2, eCost+gCost
	case "Hybrid":
		newCO2, newCost = carAnnualFootprint(ctx, r, locs, miles, r.DefaultOr(ctx, locs, "hybrid_mpg", 50))
	default: // "Efficient gas"
		newCO2, newCost = carAnnualFootprint(ctx, r, locs, miles, r.DefaultOr(ctx, locs, "efficient_car_mpg", 40))
	}
	points := oldCO2 - newCO2
	if points < 0 {
		points = 0
	}
	return EvalResult{
		Points:  points,
		Savings: oldCost - newCost,
		Explanation: fmt.Sprintf("Replacing your %.0f mpg car with a %s model avoids about %s per year and changes fuel costs by %s annually over %.0f miles.",
			mpg, newType, fmtLbs(points), fmtDollars(oldCost-newCost), miles),
	}
}

func evalReduceCarMiles(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "reduce_car_miles") {
		return zeroImpact("No impact without driving less.")
	}
	locs := a.Localities()
	miles := a.Float("car_annual_miles", 12000)
	frac := a.Float("fraction_miles_reduced", 0.1)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	mpg := a.Float("car_mpg", 25)
	co2, cost := carAnnualFootprint(ctx, r, locs, miles*frac, mpg)
	return EvalResult{
		Points:  co2,
		Savings: cost,
		Explanation: fmt.Sprintf("Cutting %.0f%% of your %.0f annual miles by walking, biking, transit, or carpooling avoids about %s and saves %s per year.",
			frac*100, miles, fmtLbs(co2), fmtDollars(cost)),
	}
}

func evalEliminateCar(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "eliminate_car") {
		return zeroImpact("No impact without giving up a car.")
	}
	cars := a.Float("number_of_cars", 1)
	if cars <= 0 {
		return zeroImpact("With no car to give up, there is no additional impact.")
	}
	locs := a.Localities()
	miles := a.Float("car_annual_miles", 12000)
	mpg := a.Float("car_mpg", 25)
	co2, fuelCost := carAnnualFootprint(ctx, r, locs, miles, mpg)
	ownership := r.DefaultOr(ctx, locs, "car_annual_ownership_cost", 4000)
	return EvalResult{
		Points:  co2,
		Savings: fuelCost + ownership,
		Explanation: fmt.Sprintf("Going car-free for one vehicle avoids about %s per year and saves roughly %s in fuel, insurance, and upkeep.",
			fmtLbs(co2), fmtDollars(fuelCost+ownership)),
	}
}

func evalReduceFlights(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "reduce_flights") {
		return zeroImpact("No impact without flying less.")
	}
	flights := a.Float("flights_per_year", 4)
	if flights <= 0 {
		return zeroImpact("With no flights to cut, there is no additional impact.")
	}
	frac := a.Float("fraction_flights_reduced", 0.5)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	locs := a.Localities()
	co2PerFlight := r.DefaultOr(ctx, locs, "flight_lbs_co2_per_flight", 1100)
	pricePerFlight := r.DefaultOr(ctx, locs, "flight_average_price", 400)
	cut := flights * frac
	return EvalResult{
		Points:  cut * co2PerFlight,
		Savings: cut * pricePerFlight,
		Explanation: fmt.Sprintf("Cutting %.1f of your %.0f annual round-trip flights avoids about %s and saves %s per year.",
			cut, flights, fmtLbs(cut*co2PerFlight), fmtDollars(cut*pricePerFlight)),
	}
}

func evalOffsetFlights(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "offset_flights") {
		return zeroImpact("No impact without purchasing flight offsets.")
	}
	flights := a.Float("flights_per_year", 4)
	if flights <= 0 {
		return zeroImpact("With no flights to offset, there is no additional impact.")
	}
	frac := a.Float("fraction_flights_offset", 1.0)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	locs := a.Localities()
	co2PerFlight := r.DefaultOr(ctx, locs, "flight_lbs_co2_per_flight", 1100)
	offsetPerTon := r.DefaultOr(ctx, locs, "offset_price_per_ton", 15)
	offsetCO2 := flights * frac * co2PerFlight
	cost := offsetCO2 / 2000 * offsetPerTon
	return EvalResult{
		Points:  offsetCO2,
		Cost:    cost,
		Explanation: fmt.Sprintf("Offsetting %.0f%% of your %.0f annual flights covers about %s for roughly %s per year.",
			frac*100, flights, fmtLbs(offsetCO2), fmtDollars(cost)),
	}
}
