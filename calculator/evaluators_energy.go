package calculator

import (
	"context"
	"fmt"
)

// annualElecUse derives household electricity consumption in kWh/year from
// the reported monthly bill, netting out the utility's fixed charge.
func annualElecUse(ctx context.Context, r *Resolver, a Answers) float64 {
	locs := a.Localities()
	monthlyBill := a.Float("monthly_elec_bill", 150)
	fixedCharge := r.DefaultOr(ctx, locs, "elec_monthly_fixed_charge", 7.00)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	if pricePerKWh <= 0 {
		return 0
	}
	variable := monthlyBill - fixedCharge
	if variable < 0 {
		variable = 0
	}
	return 12 * variable / pricePerKWh
}

func evalEnergyFair(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "attend_fair") {
		return zeroImpact("No impact without attending an energy fair, but you can always sign up later.")
	}
	locs := a.Localities()
	points := r.DefaultOr(ctx, locs, "energy_fair_average_points", 50)
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Attending an energy fair typically leads to follow-on actions worth about %s per year.", fmtLbs(points)),
	}
}

func evalEnergyAudit(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if a.YesNo("energy_audit_recently", "No") == "Yes" {
		return zeroImpact("Your home was audited recently, so a new audit would not add savings yet.")
	}
	if optedOut(a, "schedule_audit") {
		return zeroImpact("No impact without scheduling an energy audit.")
	}
	locs := a.Localities()
	heatCO2, heatCost := heatingFuelProfile(ctx, r, locs, a.String("heating_fuel", "Natural Gas"))
	frac := r.DefaultOr(ctx, locs, "energy_audit_savings_fraction", 0.05)
	points := frac * heatCO2
	savings := frac * heatCost
	return EvalResult{
		Points:  points,
		Savings: savings,
		Explanation: fmt.Sprintf("An energy audit and its recommended fixes typically cut heating use by about %.0f%%, saving around %s and %s per year.",
			frac*100, fmtLbs(points), fmtDollars(savings)),
	}
}

func evalProgThermostats(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if a.YesNo("have_prog_thermostats", "No") == "Yes" {
		return zeroImpact("You already have programmable thermostats, so there is no additional impact.")
	}
	if optedOut(a, "install_prog_thermostats") {
		return zeroImpact("No impact without installing programmable thermostats.")
	}
	locs := a.Localities()
	heatCO2, heatCost := heatingFuelProfile(ctx, r, locs, a.String("heating_fuel", "Natural Gas"))
	frac := r.DefaultOr(ctx, locs, "thermostat_savings_fraction", 0.08)
	cost := r.DefaultOr(ctx, locs, "thermostat_cost", 150)
	points := frac * heatCO2
	savings := frac * heatCost
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: savings,
		Explanation: fmt.Sprintf("Programmable thermostats trim heating use by about %.0f%%, saving roughly %s and %s per year for around %s installed.",
			frac*100, fmtLbs(points), fmtDollars(savings), fmtDollars(cost)),
	}
}

func evalWeatherize(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if a.YesNo("home_weatherized", "No") == "Yes" {
		return zeroImpact("Your home is already weatherized, so there is no additional impact.")
	}
	if optedOut(a, "weatherize_home") {
		return zeroImpact("No impact without air sealing and insulating your home.")
	}
	locs := a.Localities()
	heatCO2, heatCost := heatingFuelProfile(ctx, r, locs, a.String("heating_fuel", "Natural Gas"))
	frac := r.DefaultOr(ctx, locs, "weatherize_savings_fraction", 0.15)
	cost := r.DefaultOr(ctx, locs, "weatherize_cost", 2000)
	points := frac * heatCO2
	savings := frac * heatCost
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: savings,
		Explanation: fmt.Sprintf("Air sealing and insulation typically cut heating use by %.0f%%, saving about %s and %s per year.",
			frac*100, fmtLbs(points), fmtDollars(savings)),
	}
}

func evalCommunitySolar(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "community_solar") {
		return zeroImpact("No impact without joining a community solar project.")
	}
	locs := a.Localities()
	annualKWh := annualElecUse(ctx, r, a)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	frac := r.DefaultOr(ctx, locs, "community_solar_fractional_savings", 0.07)
	monthlyBill := a.Float("monthly_elec_bill", 150)
	fixedCharge := r.DefaultOr(ctx, locs, "elec_monthly_fixed_charge", 7.00)
	variable := monthlyBill - fixedCharge
	if variable < 0 {
		variable = 0
	}
	points := frac * annualKWh * co2PerKWh
	savings := frac * 12 * variable
	return EvalResult{
		Points:  points,
		Savings: savings,
		Explanation: fmt.Sprintf("Subscribing to community solar covers your roughly %.0f kWh of annual use with local solar, reducing emissions by about %s and your bills by %s per year, with no upfront cost.",
			annualKWh, fmtLbs(points), fmtDollars(savings)),
	}
}

func evalRenewableElec(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "choose_renewable") {
		return zeroImpact("No impact without switching to a renewable electricity supply.")
	}
	locs := a.Localities()
	annualKWh := annualElecUse(ctx, r, a)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	frac := a.Float("fraction_renewable", 1.0)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	premium := r.DefaultOr(ctx, locs, "renewable_elec_premium_per_kwh", 0.01)
	points := frac * annualKWh * co2PerKWh
	extraCost := frac * annualKWh * premium
	return EvalResult{
		Points:  points,
		Savings: -extraCost,
		Explanation: fmt.Sprintf("Sourcing %.0f%% of your electricity from renewables avoids about %s per year, for a supply premium of roughly %s per year.",
			frac*100, fmtLbs(points), fmtDollars(extraCost)),
	}
}

func evalLEDSwap(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "swap_to_led") {
		return zeroImpact("No impact without swapping your old bulbs for LEDs.")
	}
	bulbs := a.Float("num_old_bulbs", 10)
	if bulbs <= 0 {
		return zeroImpact("With no incandescent or halogen bulbs left to replace, there is no additional impact.")
	}
	locs := a.Localities()
	kwhPerBulb := r.DefaultOr(ctx, locs, "led_kwh_saved_per_bulb", 45)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	bulbCost := r.DefaultOr(ctx, locs, "led_bulb_price", 3)
	savedKWh := bulbs * kwhPerBulb
	points := savedKWh * co2PerKWh
	savings := savedKWh * pricePerKWh
	cost := bulbs * bulbCost
	return EvalResult{
		Points:  points,
		Cost:    cost,
		Savings: savings,
		Explanation: fmt.Sprintf("Replacing %.0f old bulbs with LEDs saves about %.0f kWh a year, avoiding %s and saving %s annually for around %s in bulbs.",
			bulbs, savedKWh, fmtLbs(points), fmtDollars(savings), fmtDollars(cost)),
	}
}

func evalElecMonitor(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_monitor") {
		return zeroImpact("No impact without installing an electricity use monitor.")
	}
	locs := a.Localities()
	annualKWh := annualElecUse(ctx, r, a)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	frac := r.DefaultOr(ctx, locs, "monitor_savings_fraction", 0.05)
	cost := r.DefaultOr(ctx, locs, "elec_monitor_price", 150)
	savedKWh := frac * annualKWh
	return EvalResult{
		Points:  savedKWh * co2PerKWh,
		Cost:    cost,
		Savings: savedKWh * pricePerKWh,
		Explanation: fmt.Sprintf("Households with a usage monitor typically shave %.0f%% off their electricity use, about %.0f kWh or %s per year.",
			frac*100, savedKWh, fmtLbs(savedKWh*co2PerKWh)),
	}
}
