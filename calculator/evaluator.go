package calculator

import (
	"context"
	"fmt"
)

// EvalResult is the outcome of one action evaluation: estimated annual CO2
// reduction in pounds, upfront cost and annual dollar savings, plus a
// user-facing explanation. Explanation is always non-empty, including for
// zero-impact outcomes.
type EvalResult struct {
	Points      float64
	Cost        float64
	Savings     float64
	Explanation string
}

// EvalFunc computes the impact of one action from the user's answers. An
// evaluator must tolerate missing or malformed answers and must not return
// an error for them; every constant it consults carries a literal fallback.
type EvalFunc func(ctx context.Context, r *Resolver, a Answers) EvalResult

// DefaultEvaluatorKey binds action rows that have no bespoke formula yet.
// Such actions remain listable and estimable, with zero impact, the moment
// they appear in the actions table.
const DefaultEvaluatorKey = "__default__"

// Registry returns the dispatch table mapping action name to its evaluator.
// A fresh map is returned so callers can layer overrides without affecting
// the package-level set.
func Registry() map[string]EvalFunc {
	reg := map[string]EvalFunc{
		// energy
		"energy_fair":      evalEnergyFair,
		"energy_audit":     evalEnergyAudit,
		"prog_thermostats": evalProgThermostats,
		"weatherize":       evalWeatherize,
		"community_solar":  evalCommunitySolar,
		"renewable_elec":   evalRenewableElec,
		"led_swap":         evalLEDSwap,
		"elec_monitor":     evalElecMonitor,

		// heating
		"heating_assessment": evalHeatingAssessment,
		"efficient_fossil":   evalEfficientFossil,
		"air_source_hp":      evalAirSourceHP,
		"ground_source_hp":   evalGroundSourceHP,

		// hot water
		"hw_assessment":   evalHotWaterAssessment,
		"hp_water_heater": evalHPWaterHeater,
		"solar_hw":        evalSolarHW,

		// solar
		"solar_assessment": evalSolarAssessment,
		"install_solarPV":  evalInstallSolarPV,

		// appliances
		"fridge_pickup":     evalFridgePickup,
		"smart_power_strip": evalSmartPowerStrip,
		"electric_dryer":    evalElectricDryer,
		"induction_stove":   evalInductionStove,
		"efficient_fridge":  evalEfficientFridge,
		"efficient_washer":  evalEfficientWasher,
		"cold_water_wash":   evalColdWaterWash,
		"line_dry":          evalLineDry,

		// transportation
		"replace_car":      evalReplaceCar,
		"reduce_car_miles": evalReduceCarMiles,
		"eliminate_car":    evalEliminateCar,
		"reduce_flights":   evalReduceFlights,
		"offset_flights":   evalOffsetFlights,

		// food and waste
		"low_carbon_diet": evalLowCarbonDiet,
		"reduce_waste":    evalReduceWaste,
		"compost":         evalCompost,

		// lawn and yard
		"lawn_assessment":  evalLawnAssessment,
		"reduce_lawn_size": evalReduceLawnSize,
		"reduce_lawn_care": evalReduceLawnCare,
		"electric_mower":   evalElectricMower,
		"rake_elec_blower": evalRakeElecBlower,

		DefaultEvaluatorKey: evalUnspecifiedAction,
	}
	return reg
}

// evalUnspecifiedAction is the documented degradation path for action rows
// with no bespoke formula: zero impact with an explanatory message.
func evalUnspecifiedAction(_ context.Context, _ *Resolver, _ Answers) EvalResult {
	return EvalResult{
		Explanation: "We don't have a detailed estimate for this action yet, so no impact was computed.",
	}
}

// zeroImpact builds a no-impact result with the given explanation.
func zeroImpact(explanation string) EvalResult {
	return EvalResult{Explanation: explanation}
}

// optedOut reports whether the user answered the action's opt-in gate with
// an explicit "No".
func optedOut(a Answers, gate string) bool {
	return a.YesNo(gate, "Yes") == "No"
}

// fmtLbs renders a pounds-of-CO2 quantity for explanation copy.
func fmtLbs(v float64) string {
	return fmt.Sprintf("%.0f pounds of CO2", v)
}

// fmtDollars renders a dollar quantity for explanation copy.
func fmtDollars(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}
