package calculator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/utils"
)

// emptyResolver resolves nothing, so every evaluator runs on its literal
// fallback constants. That gives the tests stable, hand-checkable numbers.
func emptyResolver() *Resolver {
	return NewResolver(&memDefaultsStore{})
}

func seededResolver(entries ...*models.ConstantEntry) *Resolver {
	return NewResolver(&memDefaultsStore{entries: entries})
}

func TestRegistry(t *testing.T) {
	reg := Registry()

	assert.Len(t, reg, 39)
	assert.Contains(t, reg, DefaultEvaluatorKey)
	for _, name := range []string{
		"energy_fair", "community_solar", "air_source_hp", "hp_water_heater",
		"install_solarPV", "fridge_pickup", "replace_car", "low_carbon_diet",
		"electric_mower",
	} {
		assert.Contains(t, reg, name)
	}

	t.Run("FreshCopy", func(t *testing.T) {
		reg["energy_fair"] = nil
		assert.NotNil(t, Registry()["energy_fair"])
	})

	t.Run("DefaultEvaluator", func(t *testing.T) {
		res := reg[DefaultEvaluatorKey](context.Background(), emptyResolver(), Answers{})
		assert.Zero(t, res.Points)
		assert.Zero(t, res.Cost)
		assert.Zero(t, res.Savings)
		assert.NotEmpty(t, res.Explanation)
	})
}

func TestOptInGates(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	t.Run("ExplicitNoIsZeroImpact", func(t *testing.T) {
		res := evalCommunitySolar(ctx, r, Answers{"community_solar": "No"})
		assert.Zero(t, res.Points)
		assert.Zero(t, res.Savings)
		assert.NotEmpty(t, res.Explanation)
	})

	t.Run("LowercaseNoNormalized", func(t *testing.T) {
		res := evalEnergyFair(ctx, r, Answers{"attend_fair": "n"})
		assert.Zero(t, res.Points)
	})

	t.Run("MissingGateCountsAsYes", func(t *testing.T) {
		res := evalEnergyFair(ctx, r, Answers{})
		assert.InDelta(t, 50, res.Points, 1e-9)
	})
}

func TestAlreadyDoneGates(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	t.Run("RecentAudit", func(t *testing.T) {
		res := evalEnergyAudit(ctx, r, Answers{"energy_audit_recently": "Yes"})
		assert.Zero(t, res.Points)
		assert.Contains(t, res.Explanation, "audited recently")
	})

	t.Run("HaveThermostats", func(t *testing.T) {
		res := evalProgThermostats(ctx, r, Answers{"have_prog_thermostats": "yes"})
		assert.Zero(t, res.Points)
	})

	t.Run("AlreadyWeatherized", func(t *testing.T) {
		res := evalWeatherize(ctx, r, Answers{"home_weatherized": "Yes"})
		assert.Zero(t, res.Points)
	})

	t.Run("NoExtraFridgeByDefault", func(t *testing.T) {
		// have_extra_fridge defaults to No, so with no answer at all the
		// pickup cannot save anything.
		res := evalFridgePickup(ctx, r, Answers{})
		assert.Zero(t, res.Points)

		res = evalFridgePickup(ctx, r, Answers{"have_extra_fridge": "Yes"})
		assert.InDelta(t, 1200*0.75, res.Points, 1e-9)
		assert.InDelta(t, 1200*0.2209, res.Savings, 1e-9)
	})

	t.Run("AlreadyCompost", func(t *testing.T) {
		res := evalCompost(ctx, r, Answers{"already_compost": "Yes"})
		assert.Zero(t, res.Points)
	})
}

func TestEvalCommunitySolar(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultConstants", func(t *testing.T) {
		// $150 bill less the $7 fixed charge at $0.2209/kWh is about
		// 7768 kWh/year; 7% of that at 0.75 lbs/kWh.
		res := evalCommunitySolar(ctx, emptyResolver(), Answers{"monthly_elec_bill": 150.0})
		kwh := 12 * 143 / 0.2209
		assert.InDelta(t, 0.07*kwh*0.75, res.Points, 1e-9)
		assert.InDelta(t, 407.8, res.Points, 0.1)
		assert.InDelta(t, 120.12, res.Savings, 1e-9)
		assert.Zero(t, res.Cost)
	})

	t.Run("LocalityGridFactor", func(t *testing.T) {
		// Concord's municipal grid is much cleaner than the regional
		// default, which shrinks the avoided emissions proportionally.
		r := seededResolver(entry("elec_lbs_co2_per_kwh", "Concord", utils.EpochSentinel, 0.12))
		res := evalCommunitySolar(ctx, r, Answers{
			"monthly_elec_bill":      150.0,
			utils.CommunityAnswerKey: "Concord",
		})
		kwh := 12 * 143 / 0.2209
		assert.InDelta(t, 0.07*kwh*0.12, res.Points, 1e-9)
		assert.InDelta(t, 120.12, res.Savings, 1e-9)
	})

	t.Run("BillBelowFixedCharge", func(t *testing.T) {
		res := evalCommunitySolar(ctx, emptyResolver(), Answers{"monthly_elec_bill": 5.0})
		assert.Zero(t, res.Points)
		assert.Zero(t, res.Savings)
	})
}

func TestEvalRenewableElec(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	res := evalRenewableElec(ctx, r, Answers{
		"monthly_elec_bill":  150.0,
		"fraction_renewable": 2.5, // clamped to 1
	})
	kwh := 12 * 143 / 0.2209
	assert.InDelta(t, kwh*0.75, res.Points, 1e-9)
	// The supply premium shows up as negative savings.
	assert.InDelta(t, -kwh*0.01, res.Savings, 1e-9)
	assert.Less(t, res.Savings, 0.0)

	t.Run("NegativeFractionClamped", func(t *testing.T) {
		res := evalRenewableElec(ctx, r, Answers{"fraction_renewable": -1.0})
		assert.Zero(t, res.Points)
	})
}

func TestEvalLEDSwap(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	res := evalLEDSwap(ctx, r, Answers{"num_old_bulbs": 20.0})
	assert.InDelta(t, 20*45*0.75, res.Points, 1e-9)
	assert.InDelta(t, 20*45*0.2209, res.Savings, 1e-9)
	assert.InDelta(t, 60, res.Cost, 1e-9)

	t.Run("NoBulbsLeft", func(t *testing.T) {
		res := evalLEDSwap(ctx, r, Answers{"num_old_bulbs": 0.0})
		assert.Zero(t, res.Points)
		assert.Zero(t, res.Cost)
	})
}

func TestHeatingFuelProfile(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	cases := []struct {
		fuel string
		co2  float64
		cost float64
	}{
		{FuelOil, 880 * 22.4, 880 * 2.85},
		{FuelGas, 700 * 11.7, 700 * 1.25},
		{FuelPropane, 600 * 12.7, 600 * 3.10},
		{FuelElectric, 15000 * 0.75, 15000 * 0.2209},
		{FuelHeatPump, 5000 * 0.75, 5000 * 0.2209},
		{FuelWood, 0, 4 * 250},
		{"Coal", 700 * 11.7, 700 * 1.25}, // unrecognized falls back to gas
	}
	for _, tc := range cases {
		t.Run(tc.fuel, func(t *testing.T) {
			co2, cost := heatingFuelProfile(ctx, r, nil, tc.fuel)
			assert.InDelta(t, tc.co2, co2, 1e-9)
			assert.InDelta(t, tc.cost, cost, 1e-9)
		})
	}
}

func TestEvalAirSourceHP(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	t.Run("FromOilWholeHouse", func(t *testing.T) {
		res := evalAirSourceHP(ctx, r, Answers{"heating_fuel": FuelOil})
		oldCO2 := 880 * 22.4
		newCO2 := 5000 * 0.75
		assert.InDelta(t, oldCO2-newCO2, res.Points, 1e-9)
		assert.InDelta(t, 880*2.85-5000*0.2209, res.Savings, 1e-9)
		assert.InDelta(t, 12000, res.Cost, 1e-9)
	})

	t.Run("PartialHome", func(t *testing.T) {
		res := evalAirSourceHP(ctx, r, Answers{
			"heating_fuel":          FuelOil,
			"whole_house_heat_pump": "No",
		})
		assert.InDelta(t, 0.6*(880*22.4-5000*0.75), res.Points, 1e-9)
		assert.InDelta(t, 0.6*12000, res.Cost, 1e-9)
	})

	t.Run("AlreadyHeatPump", func(t *testing.T) {
		res := evalAirSourceHP(ctx, r, Answers{"heating_fuel": FuelHeatPump})
		assert.Zero(t, res.Points)
	})
}

func TestEvalEfficientFossil(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	res := evalEfficientFossil(ctx, r, Answers{"heating_fuel": FuelOil})
	assert.InDelta(t, 0.15*880*22.4, res.Points, 1e-9)
	assert.InDelta(t, 7500, res.Cost, 1e-9)

	t.Run("NotForElectricHeat", func(t *testing.T) {
		res := evalEfficientFossil(ctx, r, Answers{"heating_fuel": FuelElectric})
		assert.Zero(t, res.Points)
		assert.Contains(t, res.Explanation, "heat pump")
	})
}

func TestEvalInstallSolarPV(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	t.Run("NotSurePotential", func(t *testing.T) {
		// "Not sure" derates to 0.75: a 7 kW array at 1200 kWh/kW makes
		// 6300 kWh, under the household's ~7768 kWh use, so no cap.
		res := evalInstallSolarPV(ctx, r, Answers{"monthly_elec_bill": 150.0})
		assert.InDelta(t, 6300*0.75, res.Points, 1e-9)
		assert.InDelta(t, 6300*0.2209, res.Savings, 1e-9)
		assert.InDelta(t, 7*3000*(1-0.3), res.Cost, 1e-9)
	})

	t.Run("ProductionCappedAtUse", func(t *testing.T) {
		res := evalInstallSolarPV(ctx, r, Answers{
			"monthly_elec_bill": 150.0,
			"solar_potential":   "Great",
		})
		use := 12 * 143 / 0.2209
		assert.InDelta(t, use*0.75, res.Points, 1e-9)
	})

	t.Run("PoorRoof", func(t *testing.T) {
		res := evalInstallSolarPV(ctx, r, Answers{"solar_potential": "Poor"})
		assert.Zero(t, res.Points)
		assert.Contains(t, res.Explanation, "Community solar")
	})
}

func TestEvalSolarAssessment(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	res := evalSolarAssessment(ctx, r, Answers{})
	assert.InDelta(t, 100, res.Points, 1e-9)

	t.Run("NonViableRoof", func(t *testing.T) {
		res := evalSolarAssessment(ctx, r, Answers{"solar_potential": "None"})
		assert.Zero(t, res.Points)
	})
}

func TestEvalReplaceCar(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	// Baseline: 12000 miles at 25 mpg is 480 gallons.
	oldCO2 := 480 * 19.6
	oldCost := 480 * 3.10

	t.Run("Electric", func(t *testing.T) {
		res := evalReplaceCar(ctx, r, Answers{"new_car_type": "Electric"})
		kwh := 12000 * 0.3
		assert.InDelta(t, oldCO2-kwh*0.75, res.Points, 1e-9)
		assert.InDelta(t, oldCost-kwh*0.2209, res.Savings, 1e-9)
	})

	t.Run("Hybrid", func(t *testing.T) {
		res := evalReplaceCar(ctx, r, Answers{"new_car_type": "Hybrid"})
		assert.InDelta(t, oldCO2-240*19.6, res.Points, 1e-9)
		assert.InDelta(t, oldCost-240*3.10, res.Savings, 1e-9)
	})

	t.Run("PluginHybrid", func(t *testing.T) {
		res := evalReplaceCar(ctx, r, Answers{"new_car_type": "Plug-in Hybrid"})
		evKWh := 12000 * 0.6 * 0.3
		gasGal := 12000 * 0.4 / 50
		newCO2 := evKWh*0.75 + gasGal*19.6
		assert.InDelta(t, oldCO2-newCO2, res.Points, 1e-9)
	})

	t.Run("EfficientGas", func(t *testing.T) {
		res := evalReplaceCar(ctx, r, Answers{"new_car_type": "Efficient gas"})
		assert.InDelta(t, oldCO2-12000.0/40*19.6, res.Points, 1e-9)
	})

	t.Run("DowngradeNeverNegative", func(t *testing.T) {
		res := evalReplaceCar(ctx, r, Answers{
			"car_mpg":      60.0,
			"new_car_type": "Efficient gas",
		})
		assert.Zero(t, res.Points)
	})
}

func TestEvalEliminateCar(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	res := evalEliminateCar(ctx, r, Answers{})
	assert.InDelta(t, 480*19.6, res.Points, 1e-9)
	// Savings include fuel plus ownership costs.
	assert.InDelta(t, 480*3.10+4000, res.Savings, 1e-9)

	t.Run("NoCar", func(t *testing.T) {
		res := evalEliminateCar(ctx, r, Answers{"number_of_cars": 0.0})
		assert.Zero(t, res.Points)
	})
}

func TestEvalFlights(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	t.Run("ReduceHalf", func(t *testing.T) {
		res := evalReduceFlights(ctx, r, Answers{"flights_per_year": 6.0})
		assert.InDelta(t, 3*1100, res.Points, 1e-9)
		assert.InDelta(t, 3*400, res.Savings, 1e-9)
	})

	t.Run("OffsetAll", func(t *testing.T) {
		res := evalOffsetFlights(ctx, r, Answers{"flights_per_year": 4.0})
		assert.InDelta(t, 4*1100, res.Points, 1e-9)
		assert.InDelta(t, 4*1100.0/2000*15, res.Cost, 1e-9)
	})

	t.Run("NoFlights", func(t *testing.T) {
		res := evalReduceFlights(ctx, r, Answers{"flights_per_year": 0.0})
		assert.Zero(t, res.Points)
	})
}

func TestEvalLowCarbonDiet(t *testing.T) {
	ctx := context.Background()
	r := emptyResolver()

	cases := []struct {
		diet string
		frac float64
	}{
		{"Less red meat", 0.4},
		{"No red meat", 0.7},
		{"Vegetarian", 1.0},
		{"Vegan", 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.diet, func(t *testing.T) {
			res := evalLowCarbonDiet(ctx, r, Answers{
				"family_size": 2.0,
				"diet_shift":  tc.diet,
			})
			assert.InDelta(t, 2*600*tc.frac, res.Points, 1e-9)
		})
	}
}

func TestAnswersAccessors(t *testing.T) {
	a := Answers{
		"text":    "  padded  ",
		"num":     42.5,
		"numstr":  "17",
		"yes":     true,
		"no":      "FALSE",
		"blank":   "",
		"nilval":  nil,
		"weird":   []string{"x"},
		"int_val": 7,
	}

	assert.Equal(t, "padded", a.String("text", "d"))
	assert.Equal(t, "42.5", a.String("num", "d"))
	assert.Equal(t, "d", a.String("blank", "d"))
	assert.Equal(t, "d", a.String("nilval", "d"))
	assert.Equal(t, "d", a.String("weird", "d"))
	assert.Equal(t, "d", a.String("missing", "d"))

	assert.InDelta(t, 42.5, a.Float("num", 0), 1e-9)
	assert.InDelta(t, 17, a.Float("numstr", 0), 1e-9)
	assert.InDelta(t, 7, a.Float("int_val", 0), 1e-9)
	assert.InDelta(t, 9, a.Float("text", 9), 1e-9)
	assert.InDelta(t, 9, a.Float("missing", 9), 1e-9)

	assert.Equal(t, "Yes", a.YesNo("yes", "No"))
	assert.Equal(t, "No", a.YesNo("no", "Yes"))
	assert.Equal(t, "Maybe", a.YesNo("missing", "Maybe"))
}

func TestAnswersLocalities(t *testing.T) {
	require.Nil(t, Answers{}.Localities())
	require.Nil(t, Answers{utils.CommunityAnswerKey: utils.DefaultLocality}.Localities())
	assert.Equal(t, []string{"Wayland"}, Answers{utils.CommunityAnswerKey: "Wayland"}.Localities())
}
