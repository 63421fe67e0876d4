package calculator

import (
	"context"
	"fmt"
)

// Heating fuel labels as they appear in question response options.
const (
	FuelOil      = "Fuel Oil"
	FuelGas      = "Natural Gas"
	FuelPropane  = "Propane"
	FuelElectric = "Electric Resistance"
	FuelHeatPump = "Electric Heat Pump"
	FuelWood     = "Wood"
)

// heatingFuelProfile returns the annual CO2 (lbs) and fuel cost (dollars) of
// a typical home heated with the given fuel, from locality defaults.
// Unrecognized fuels fall back to the natural gas profile. Wood is treated
// as near-neutral on combustion CO2 but still carries a fuel cost.
func heatingFuelProfile(ctx context.Context, r *Resolver, locs []string, fuel string) (co2 float64, cost float64) {
	switch fuel {
	case FuelOil:
		gallons := r.DefaultOr(ctx, locs, "oil_typical_annual_gallons", 880)
		co2 = gallons * r.DefaultOr(ctx, locs, "oil_lbs_co2_per_gallon", 22.4)
		cost = gallons * r.DefaultOr(ctx, locs, "oil_price_per_gallon", 2.85)
	case FuelPropane:
		gallons := r.DefaultOr(ctx, locs, "propane_typical_annual_gallons", 600)
		co2 = gallons * r.DefaultOr(ctx, locs, "propane_lbs_co2_per_gallon", 12.7)
		cost = gallons * r.DefaultOr(ctx, locs, "propane_price_per_gallon", 3.10)
	case FuelElectric:
		kwh := r.DefaultOr(ctx, locs, "elec_heat_typical_annual_kwh", 15000)
		co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	case FuelHeatPump:
		kwh := r.DefaultOr(ctx, locs, "heat_pump_typical_annual_kwh", 5000)
		co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	case FuelWood:
		cords := r.DefaultOr(ctx, locs, "wood_typical_annual_cords", 4)
		co2 = cords * r.DefaultOr(ctx, locs, "wood_lbs_co2_per_cord", 0)
		cost = cords * r.DefaultOr(ctx, locs, "wood_price_per_cord", 250)
	default: // Natural Gas and anything unrecognized
		therms := r.DefaultOr(ctx, locs, "gas_typical_annual_therms", 700)
		co2 = therms * r.DefaultOr(ctx, locs, "gas_lbs_co2_per_therm", 11.7)
		cost = therms * r.DefaultOr(ctx, locs, "gas_price_per_therm", 1.25)
	}
	return co2, cost
}

func evalHeatingAssessment(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "heating_system_assessment") {
		return zeroImpact("No impact without having your heating system assessed.")
	}
	locs := a.Localities()
	fuel := a.String("heating_fuel", FuelGas)
	heatCO2, heatCost := heatingFuelProfile(ctx, r, locs, fuel)
	frac := r.DefaultOr(ctx, locs, "heating_assessment_savings_fraction", 0.05)
	return EvalResult{
		Points:  frac * heatCO2,
		Savings: frac * heatCost,
		Explanation: fmt.Sprintf("A heating system assessment usually surfaces tune-ups worth about %.0f%% of your %s heating use, around %s and %s per year.",
			frac*100, fuel, fmtLbs(frac*heatCO2), fmtDollars(frac*heatCost)),
	}
}

func evalEfficientFossil(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "upgrade_heating_system") {
		return zeroImpact("No impact without upgrading your heating system.")
	}
	locs := a.Localities()
	fuel := a.String("heating_fuel", FuelGas)
	switch fuel {
	case FuelOil, FuelGas, FuelPropane:
	default:
		return zeroImpact("A high-efficiency fossil system upgrade only applies to oil, gas, or propane heat. Consider a heat pump instead.")
	}
	heatCO2, heatCost := heatingFuelProfile(ctx, r, locs, fuel)
	frac := r.DefaultOr(ctx, locs, "efficient_fossil_savings_fraction", 0.15)
	cost := r.DefaultOr(ctx, locs, "efficient_fossil_system_cost", 7500)
	return EvalResult{
		Points:  frac * heatCO2,
		Cost:    cost,
		Savings: frac * heatCost,
		Explanation: fmt.Sprintf("A high-efficiency %s system cuts fuel use by about %.0f%%, saving roughly %s and %s per year for around %s installed.",
			fuel, frac*100, fmtLbs(frac*heatCO2), fmtDollars(frac*heatCost), fmtDollars(cost)),
	}
}

func evalAirSourceHP(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_ashp") {
		return zeroImpact("No impact without installing an air source heat pump.")
	}
	locs := a.Localities()
	fuel := a.String("heating_fuel", FuelGas)
	if fuel == FuelHeatPump {
		return zeroImpact("You already heat with a heat pump, so there is no additional impact.")
	}
	oldCO2, oldCost := heatingFuelProfile(ctx, r, locs, fuel)
	newCO2, newCost := heatingFuelProfile(ctx, r, locs, FuelHeatPump)
	frac := 1.0
	if a.YesNo("whole_house_heat_pump", "Yes") == "No" {
		frac = r.DefaultOr(ctx, locs, "partial_heat_pump_fraction", 0.6)
	}
	cost := r.DefaultOr(ctx, locs, "ashp_cost", 12000) * frac
	points := frac * (oldCO2 - newCO2)
	savings := frac * (oldCost - newCost)
	if points < 0 {
		points = 0
	}
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: savings,
		Explanation: fmt.Sprintf("Replacing %s heat with an air source heat pump avoids about %s per year and changes your heating bills by %s annually.",
			fuel, fmtLbs(points), fmtDollars(savings)),
	}
}

func evalGroundSourceHP(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_gshp") {
		return zeroImpact("No impact without installing a ground source heat pump.")
	}
	locs := a.Localities()
	fuel := a.String("heating_fuel", FuelGas)
	if fuel == FuelHeatPump {
		return zeroImpact("You already heat with a heat pump, so there is no additional impact.")
	}
	oldCO2, oldCost := heatingFuelProfile(ctx, r, locs, fuel)
	// Ground source units run at higher efficiency than air source.
	kwh := r.DefaultOr(ctx, locs, "gshp_typical_annual_kwh", 3800)
	newCO2 := kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	newCost := kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	cost := r.DefaultOr(ctx, locs, "gshp_cost", 25000)
	points := oldCO2 - newCO2
	if points < 0 {
		points = 0
	}
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: oldCost - newCost,
		Explanation: fmt.Sprintf("A ground source heat pump replacing %s heat avoids about %s per year and changes your heating bills by %s annually.",
			fuel, fmtLbs(points), fmtDollars(oldCost-newCost)),
	}
}
