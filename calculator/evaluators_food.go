package calculator

import (
	"context"
	"fmt"
)

func evalLowCarbonDiet(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "eat_less_meat") {
		return zeroImpact("No impact without shifting toward a lower-carbon diet.")
	}
	locs := a.Localities()
	family := a.Float("family_size", 3)
	perPerson := r.DefaultOr(ctx, locs, "diet_meat_lbs_co2_per_person", 600)
	diet := a.String("diet_shift", "Less red meat")
	var frac float64
	switch diet {
	case "Vegetarian":
		frac = 1.0
	case "Vegan":
		frac = 1.2
	case "No red meat":
		frac = 0.7
	default: // "Less red meat"
		frac = 0.4
	}
	points := family * perPerson * frac
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Shifting a household of %.0f to \"%s\" avoids about %s per year, mostly from beef and dairy.", family, diet, fmtLbs(points)),
	}
}

func evalReduceWaste(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if optedOut(a, "reduce_waste") {
		return zeroImpact("No impact without reducing and recycling more of your household waste.")
	}
	locs := a.Localities()
	family := a.Float("family_size", 3)
	perPerson := r.DefaultOr(ctx, locs, "waste_lbs_co2_per_person", 250)
	frac := r.DefaultOr(ctx, locs, "waste_reduction_fraction", 0.3)
	points := family * perPerson * frac
	return EvalResult{
		Points:      points,
		Explanation: fmt.Sprintf("Reducing, reusing, and recycling can cut about %.0f%% of your household's waste footprint, around %s per year.", frac*100, fmtLbs(points)),
	}
}

func evalCompost(ctx context.Context, r *Resolver, a Answers) EvalResult {
	if a.YesNo("already_compost", "No") == "Yes" {
		return zeroImpact("You already compost your food waste, so there is no additional impact.")
	}
	if optedOut(a, "compost_food_waste") {
		return zeroImpact("No impact without composting your food waste.")
	}
	locs := a.Localities()
	family := a.Float("family_size", 3)
	perPerson := r.DefaultOr(ctx, locs, "compost_lbs_co2_per_person", 100)
	cost := r.DefaultOr(ctx, locs, "compost_bin_cost", 50)
	points := family * perPerson
	return EvalResult{
		Points:      points,
		Cost:        cost,
		Explanation: fmt.Sprintf("Composting keeps food waste out of the landfill, avoiding about %s of methane-driven emissions per year for a household of %.0f.", fmtLbs(points), family),
	}
}
