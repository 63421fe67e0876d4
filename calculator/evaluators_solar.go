package calculator

import (
	"context"
	"fmt"
)

// solarPotentialMultiplier maps the roof potential answer to a production
// derating. "Not sure" is deliberately optimistic so the estimate encourages
// getting an assessment. "Poor" and "None" mean no recommendation at all.
func solarPotentialMultiplier(potential string) (mult float64, viable bool) {
	switch potential {
	case "Great":
		return 1.0, true
	case "Good":
		return 0.85, true
	case "OK", "Fair":
		return 0.7, true
	case "Poor", "None":
		return 0, false
	default: // includes "Not sure"
		return 0.75, true
	}
}

func evalSolarAssessment(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "solar_assessment") {
		return zeroImpact("No impact without getting a solar assessment of your roof.")
	}
	_, viable := solarPotentialMultiplier(a.String("solar_potential", "Not sure"))
	if !viable {
		return zeroImpact("Your roof is not a good candidate for solar, so an assessment would not lead to savings.")
	}
	locs := a.Localities()
	points := r.DefaultOr(ctx, locs, "solar_assessment_average_points", 100)
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Homeowners who get a solar assessment go on to install panels often enough that the assessment itself is worth about %s per year on average.", fmtLbs(points)),
	}
}

func evalInstallSolarPV(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "install_solar_panels") {
		return zeroImpact("No impact without installing solar panels.")
	}
	mult, viable := solarPotentialMultiplier(a.String("solar_potential", "Not sure"))
	if !viable {
		return zeroImpact("Your roof is not a good candidate for solar panels. Community solar may be a better fit.")
	}
	locs := a.Localities()
	sizeKW := a.Float("solar_system_size_kw", r.DefaultOr(ctx, locs, "solar_typical_system_kw", 7))
	kwhPerKW := r.DefaultOr(ctx, locs, "solar_annual_kwh_per_kw", 1200)
	co2PerKWh := r.DefaultOr(ctx, locs, "elec_lbs_co2_per_kwh", 0.75)
	pricePerKWh := r.DefaultOr(ctx, locs, "elec_price_per_kwh", 0.2209)
	costPerKW := r.DefaultOr(ctx, locs, "solar_installed_cost_per_kw", 3000)
	incentive := r.DefaultOr(ctx, locs, "solar_federal_credit_fraction", 0.3)

	production := sizeKW * kwhPerKW * mult
	// Production cannot usefully exceed the household's own consumption
	// where net metering is capped at annual use.
	if use := annualElecUse(ctx, r, a); use > 0 && production > use {
		production = use
	}
	cost := sizeKW * costPerKW * (1 - incentive)
	return EvalResult{
		Points:  production * co2PerKWh,
		Cost:    cost,
		Savings: production * pricePerKWh,
		Explanation: fmt.Sprintf("A %.1f kW solar array should produce about %.0f kWh per year, avoiding %s and saving %s annually, for roughly %s after incentives.",
			sizeKW, production, fmtLbs(production*co2PerKWh), fmtDollars(production*pricePerKWh), fmtDollars(cost)),
	}
}
