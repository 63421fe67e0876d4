package calculator

import (
	"context"
	"fmt"
)

// Water heater type labels as they appear in question response options.
const (
	WaterHeaterGas      = "Natural Gas"
	WaterHeaterOil      = "Fuel Oil"
	WaterHeaterPropane  = "Propane"
	WaterHeaterElectric = "Electric"
	WaterHeaterHeatPump = "Heat Pump"
	WaterHeaterSolar    = "Solar"
)

// hotWaterProfile returns annual CO2 (lbs) and cost (dollars) of heating the
// household's hot water with the given heater type.
func hotWaterProfile(ctx context.Context, r *Resolver, locs []string, heater string, members float64) (co2 float64, cost float64) {
	// Daily hot water use per person, gallons.
	galPerPerson := r.DefaultOr(ctx, locs, "water_hw_gal_per_person", 15)
	annualGal := galPerPerson * members * 365
	// BTU to raise a gallon from supply to tank temperature.
	btuPerGal := r.DefaultOr(ctx, locs, "water_hw_btu_per_gallon", 600)
	annualBTU := annualGal * btuPerGal
	switch heater {
	case WaterHeaterElectric:
		kwh := annualBTU / 3412 / r.DefaultOr(ctx, locs, "elec_water_heater_efficiency", 0.9)
		co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	case WaterHeaterHeatPump:
		kwh := annualBTU / 3412 / r.DefaultOr(ctx, locs, "hpwh_efficiency", 3.0)
		co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	case WaterHeaterOil:
		gallons := annualBTU / 139000 / r.DefaultOr(ctx, locs, "oil_water_heater_efficiency", 0.55)
		co2 = gallons * r.DefaultOr(ctx, locs, "oil_lbs_co2_per_gallon", 22.4)
		cost = gallons * r.DefaultOr(ctx, locs, "oil_price_per_gallon", 2.85)
	case WaterHeaterPropane:
		gallons := annualBTU / 91500 / r.DefaultOr(ctx, locs, "propane_water_heater_efficiency", 0.6)
		co2 = gallons * r.DefaultOr(ctx, locs, "propane_lbs_co2_per_gallon", 12.7)
		cost = gallons * r.DefaultOr(ctx, locs, "propane_price_per_gallon", 3.10)
	case WaterHeaterSolar:
		// Backup element covers the fraction solar cannot.
		backup := r.DefaultOr(ctx, locs, "solar_hw_backup_fraction", 0.25)
		kwh := backup * annualBTU / 3412 / r.DefaultOr(ctx, locs, "elec_water_heater_efficiency", 0.9)
		co2 = kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		cost = kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	default: // Natural Gas and anything unrecognized
		therms := annualBTU / 100000 / r.DefaultOr(ctx, locs, "gas_water_heater_efficiency", 0.6)
		co2 = therms * r.DefaultOr(ctx, locs, "gas_lbs_co2_per_therm", 11.7)
		cost = therms * r.DefaultOr(ctx, locs, "gas_price_per_therm", 1.25)
	}
	return co2, cost
}

func evalHotWaterAssessment(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "hot_water_assessment") {
		return zeroImpact("No impact without having your hot water system assessed.")
	}
	locs := a.Localities()
	members := a.Float("household_members", 3)
	heater := a.String("water_heater_type", WaterHeaterGas)
	co2, cost := hotWaterProfile(ctx, r, locs, heater, members)
	frac := r.DefaultOr(ctx, locs, "hw_assessment_savings_fraction", 0.1)
	return EvalResult{
		Points:  frac * co2,
		Savings: frac * cost,
		Explanation: fmt.Sprintf("Low-flow fixtures and tank tune-ups from a hot water assessment typically save about %.0f%% of your water heating, around %s and %s per year.",
			frac*100, fmtLbs(frac*co2), fmtDollars(frac*cost)),
	}
}

func evalHPWaterHeater(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_hp_water_heater") {
		return zeroImpact("No impact without installing a heat pump water heater.")
	}
	locs := a.Localities()
	heater := a.String("water_heater_type", WaterHeaterGas)
	if heater == WaterHeaterHeatPump {
		return zeroImpact("You already have a heat pump water heater, so there is no additional impact.")
	}
	members := a.Float("household_members", 3)
	oldCO2, oldCost := hotWaterProfile(ctx, r, locs, heater, members)
	newCO2, newCost := hotWaterProfile(ctx, r, locs, WaterHeaterHeatPump, members)
	cost := r.DefaultOr(ctx, locs, "hpwh_cost", 2500)
	points := oldCO2 - newCO2
	if points < 0 {
		points = 0
	}
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: oldCost - newCost,
		Explanation: fmt.Sprintf("Swapping your %s water heater for a heat pump unit avoids about %s per year and changes your bills by %s annually, for around %s installed.",
			heater, fmtLbs(points), fmtDollars(oldCost-newCost), fmtDollars(cost)),
	}
}

func evalSolarHW(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_solar_hw") {
		return zeroImpact("No impact without installing solar hot water.")
	}
	potential := a.String("solar_potential", "Not sure")
	if potential == "Poor" || potential == "None" {
		return zeroImpact("Your roof's solar potential is too low for solar hot water to pay off.")
	}
	locs := a.Localities()
	heater := a.String("water_heater_type", WaterHeaterGas)
	if heater == WaterHeaterSolar {
		return zeroImpact("You already heat water with solar, so there is no additional impact.")
	}
	members := a.Float("household_members", 3)
	oldCO2, oldCost := hotWaterProfile(ctx, r, locs, heater, members)
	newCO2, newCost := hotWaterProfile(ctx, r, locs, WaterHeaterSolar, members)
	cost := r.DefaultOr(ctx, locs, "solar_hw_cost", 8000)
	points := oldCO2 - newCO2
	if points < 0 {
		points = 0
	}
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: oldCost - newCost,
		Explanation: fmt.Sprintf("A solar hot water system replacing your %s heater avoids about %s per year and saves roughly %s annually.",
			heater, fmtLbs(points), fmtDollars(oldCost-newCost)),
	}
}
