package calculator

import (
	"context"
	"fmt"
)

// lawnSizeSqft maps the lawn size answer to square feet. Numeric answers
// pass through as-is.
func lawnSizeSqft(a Answers) float64 {
	switch a.String("lawn_size", "") {
	case "Small (under 2000 sq ft)":
		return 1000
	case "Medium (2000-6000 sq ft)":
		return 4000
	case "Large (6000-12000 sq ft)":
		return 9000
	case "Very large (over 12000 sq ft)":
		return 16000
	}
	return a.Float("lawn_size", 4000)
}

func evalLawnAssessment(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "lawn_assessment") {
		return zeroImpact("No impact without getting a lawn care assessment.")
	}
	sqft := lawnSizeSqft(a)
	if sqft <= 0 {
		return zeroImpact("With no lawn, there is nothing to assess.")
	}
	locs := a.Localities()
	perSqft := r.DefaultOr(ctx, locs, "lawn_assessment_lbs_co2_per_sqft", 0.01)
	points := sqft * perSqft
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("A lawn care assessment typically finds mowing, watering, and fertilizing changes worth about %s per year for your %.0f sq ft lawn.", fmtLbs(points), sqft),
	}
}

func evalReduceLawnSize(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "reduce_lawn_size") {
		return zeroImpact("No impact without converting lawn to garden or meadow.")
	}
	sqft := lawnSizeSqft(a)
	if sqft <= 0 {
		return zeroImpact("With no lawn, there is nothing to convert.")
	}
	locs := a.Localities()
	frac := a.Float("fraction_lawn_converted", 0.25)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	perSqft := r.DefaultOr(ctx, locs, "lawn_lbs_co2_per_sqft", 0.02)
	converted := sqft * frac
	points := converted * perSqft
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Converting %.0f sq ft of lawn to planting beds or meadow avoids about %s per year in mowing and fertilizer emissions.", converted, fmtLbs(points)),
	}
}

func evalReduceLawnCare(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "reduce_lawn_care") {
		return zeroImpact("No impact without mowing and fertilizing less.")
	}
	sqft := lawnSizeSqft(a)
	if sqft <= 0 {
		return zeroImpact("With no lawn, there is no lawn care to reduce.")
	}
	locs := a.Localities()
	perSqft := r.DefaultOr(ctx, locs, "lawn_lbs_co2_per_sqft", 0.02)
	frac := r.DefaultOr(ctx, locs, "lawn_care_reduction_fraction", 0.5)
	points := sqft * perSqft * frac
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Mowing less often and skipping synthetic fertilizer on your %.0f sq ft lawn avoids about %s per year.", sqft, fmtLbs(points)),
	}
}

func evalElectricMower(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "switch_electric_mower") {
		return zeroImpact("No impact without switching to an electric mower.")
	}
	sqft := lawnSizeSqft(a)
	if sqft <= 0 {
		return zeroImpact("With no lawn to mow, a mower swap has no impact.")
	}
	locs := a.Localities()
	gallons := r.DefaultOr(ctx, locs, "mower_annual_gallons", 5) * sqft / 4000
	co2 := gallons * r.DefaultOr(ctx, locs, "gasoline_lbs_co2_per_gallon", 19.6)
	fuelCost := gallons * r.DefaultOr(ctx, locs, "gasoline_price_per_gallon", 3.10)
	cost := r.DefaultOr(ctx, locs, "electric_mower_cost", 450)
	return EvalResult{
		Points:  co2,
		Cost:    cost,
		Savings: fuelCost,
		Explanation: fmt.Sprintf("An electric mower replacing roughly %.1f gallons of gas a year avoids about %s, and small engines are far dirtier per gallon than cars.", gallons, fmtLbs(co2)),
	}
}

func evalRakeElecBlower(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "rake_or_electric_blower") {
		return zeroImpact("No impact without retiring your gas leaf blower.")
	}
	locs := a.Localities()
	gallons := r.DefaultOr(ctx, locs, "blower_annual_gallons", 2)
	co2 := gallons * r.DefaultOr(ctx, locs, "gasoline_lbs_co2_per_gallon", 19.6)
	fuelCost := gallons * r.DefaultOr(ctx, locs, "gasoline_price_per_gallon", 3.10)
	return EvalResult{
		Points:  co2,
		Savings: fuelCost,
		Explanation: fmt.Sprintf("Raking or using an electric blower instead of a gas one avoids about %s per year and a lot of noise.", fmtLbs(co2)),
	}
}
