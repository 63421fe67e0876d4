package calculator

import (
	"context"
	"fmt"
)

func evalFridgePickup(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if a.YesNo("have_extra_fridge", "No") == "No" {
		return zeroImpact("Without a second fridge or freezer to retire, there is no additional impact.")
	}
	if optedOut(a, "extra_fridge_pickup") {
		return zeroImpact("No impact without retiring your extra fridge or freezer.")
	}
	locs := a.Localities()
	kwh := r.DefaultOr(ctx, locs, "old_fridge_annual_kwh", 1200)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	return EvalResult{
		Points:  kwh * co2PerKWh,
		Savings: kwh * pricePerKWh,
		Explanation: fmt.Sprintf("Retiring an old second fridge saves about %.0f kWh per year, avoiding %s and saving %s annually. Many utilities pick it up for free.",
			kwh, fmtLbs(kwh*co2PerKWh), fmtDollars(kwh*pricePerKWh)),
	}
}

func evalSmartPowerStrip(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_power_strips") {
		return zeroImpact("No impact without installing smart power strips.")
	}
	strips := a.Float("num_power_strips", 2)
	if strips <= 0 {
		return zeroImpact("With no power strips to install, there is no additional impact.")
	}
	locs := a.Localities()
	kwhPerStrip := r.DefaultOr(ctx, locs, "power_strip_kwh_saved", 75)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	stripPrice := r.DefaultOr(ctx, locs, "power_strip_price", 25)
	savedKWh := strips * kwhPerStrip
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Cost:    strips * stripPrice,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("%.0f smart power strips cut standby loads by about %.0f kWh per year, avoiding %s and saving %s annually.",
			strips, savedKWh, fmtLbs(savedKWh*co2PerKWh), fmtDollars(savedKWh*pricePerKWh)),
	}
}

func evalElectricDryer(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "replace_dryer") {
		return zeroImpact("No impact without replacing your dryer with a heat pump model.")
	}
	locs := a.Localities()
	loads := a.Float("laundry_loads_per_week", 5)
	kwhPerLoad := r.DefaultOr(ctx, locs, "dryer_kwh_per_load", 3.3)
	// Heat pump dryers use roughly half the energy of conventional electric.
	frac := r.DefaultOr(ctx, locs, "hp_dryer_savings_fraction", 0.5)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	cost := r.DefaultOr(ctx, locs, "hp_dryer_cost", 1100)
	savedKWh := loads * 52 * kwhPerLoad * frac
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Cost:    cost,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("A heat pump dryer at %.0f loads a week saves about %.0f kWh per year, avoiding %s and saving %s annually.",
			loads, savedKWh, fmtLbs(savedKWh*co2PerKWh), fmtDollars(savedKWh*pricePerKWh)),
	}
}

func evalInductionStove(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_induction_stove") {
		return zeroImpact("No impact without switching to an induction stove.")
	}
	locs := a.Localities()
	stoveFuel := a.String("stove_fuel", FuelGas)
	cost := r.DefaultOr(ctx, locs, "induction_stove_cost", 1500)
	switch stoveFuel {
	case FuelGas, FuelPropane:
		therms := r.DefaultOr(ctx, locs, "stove_annual_therms", 30)
		gasCO2 := therms * r.DefaultOr(ctx, locs, "gas_lbs_co2_per_therm", 11.7)
		gasCost := therms * r.DefaultOr(ctx, locs, "gas_price_per_therm", 1.25)
		kwh := r.DefaultOr(ctx, locs, "induction_annual_kwh", 250)
		elecCO2 := kwh * r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
		elecCost := kwh * r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
		points := gasCO2 - elecCO2
		if points < 0 {
			points = 0
		}
		return EvalResult{
			Points:  points,
			Cost:    cost,
			Savings: gasCost - elecCost,
			Explanation: fmt.Sprintf("Replacing your %s stove with induction avoids about %s per year and improves indoor air quality.",
				stoveFuel, fmtLbs(points)),
		}
	default:
		return zeroImpact("You already cook with electricity, so switching to induction changes little besides cooking speed.")
	}
}

func evalEfficientFridge(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "replace_fridge") {
		return zeroImpact("No impact without replacing your refrigerator.")
	}
	age := a.Float("fridge_age_years", 10)
	locs := a.Localities()
	minAge := r.DefaultOr(ctx, locs, "fridge_replacement_min_age", 10)
	if age < minAge {
		return zeroImpact(fmt.Sprintf("Your fridge is under %.0f years old. Replacing it now would not save enough to justify the embodied emissions.", minAge))
	}
	oldKWh := r.DefaultOr(ctx, locs, "old_fridge_annual_kwh", 1200)
	newKWh := r.DefaultOr(ctx, locs, "new_fridge_annual_kwh", 400)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	cost := r.DefaultOr(ctx, locs, "new_fridge_cost", 1200)
	savedKWh := oldKWh - newKWh
	if savedKWh < 0 {
		savedKWh = 0
	}
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Cost:    cost,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("An ENERGY STAR fridge replacing your %.0f-year-old one saves about %.0f kWh per year, avoiding %s and saving %s annually.",
			age, savedKWh, fmtLbs(savedKWh*co2PerKWh), fmtDollars(savedKWh*pricePerKWh)),
	}
}

func evalEfficientWasher(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "replace_washer") {
		return zeroImpact("No impact without replacing your washing machine.")
	}
	locs := a.Localities()
	loads := a.Float("laundry_loads_per_week", 5)
	kwhSavedPerLoad := r.DefaultOr(ctx, locs, "washer_kwh_saved_per_load", 0.5)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	cost := r.DefaultOr(ctx, locs, "new_washer_cost", 800)
	savedKWh := loads * 52 * kwhSavedPerLoad
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Cost:    cost,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("A high-efficiency washer at %.0f loads a week saves about %.0f kWh per year in water heating and electricity, avoiding %s annually.",
			loads, savedKWh, fmtLbs(savedKWh*co2PerKWh)),
	}
}

func evalColdWaterWash(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "wash_in_cold_water") {
		return zeroImpact("No impact without switching your laundry to cold water.")
	}
	locs := a.Localities()
	loads := a.Float("laundry_loads_per_week", 5)
	kwhPerLoad := r.DefaultOr(ctx, locs, "hot_wash_kwh_per_load", 2.0)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	savedKWh := loads * 52 * kwhPerLoad
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("Washing %.0f loads a week in cold water saves about %.0f kWh of water heating per year, avoiding %s at no cost.",
			loads, savedKWh, fmtLbs(savedKWh*co2PerKWh)),
	}
}

func evalLineDry(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "line_dry_laundry") {
		return zeroImpact("No impact without line drying some of your laundry.")
	}
	locs := a.Localities()
	loads := a.Float("laundry_loads_per_week", 5)
	frac := a.Float("fraction_line_dry", 0.5)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	kwhPerLoad := r.DefaultOr(ctx, locs, "dryer_kwh_per_load", 3.3)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	savedKWh := loads * 52 * frac * kwhPerLoad
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("Line drying %.0f%% of %.0f weekly loads saves about %.0f kWh per year, avoiding %s at no cost.",
			frac*100, loads, savedKWh, fmtLbs(savedKWh*co2PerKWh)),
	}
}
