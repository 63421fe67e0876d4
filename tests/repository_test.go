// Package tests contains test cases for models and repository packages to avoid circular imports
package tests

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/massenergize/carbon-backend/models"
	"github.com/massenergize/carbon-backend/repository"
	testingutil "github.com/massenergize/carbon-backend/testing"
	"github.com/massenergize/carbon-backend/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set, skipping database tests")
	}
}

func TestConstantEntryRepository(t *testing.T) {
	requireTestDB(t)
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewConstantEntryRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByID", func(t *testing.T) {
			entry, err := fixtures.CreateDefaultConstant("elec_price_per_kwh", 0.2209)
			require.NoError(t, err)
			require.NotZero(t, entry.ID)

			found, err := repo.ByID(ctx, entry.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "elec_price_per_kwh", found.Variable)
			assert.Equal(t, utils.DefaultLocality, found.Locality)
			assert.Equal(t, 0.2209, found.Value)
		})

		t.Run("ByIDNotFound", func(t *testing.T) {
			found, err := repo.ByID(ctx, 999999)
			assert.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("UpsertByKeyInsertsThenOverwrites", func(t *testing.T) {
			entry := &models.ConstantEntry{
				Variable:  "gas_price_per_therm",
				Locality:  "Wayland",
				ValidFrom: utils.EpochSentinel,
				Value:     1.25,
				Reference: "initial",
			}
			require.NoError(t, repo.UpsertByKey(ctx, entry))
			require.NotZero(t, entry.ID)
			firstID := entry.ID

			update := &models.ConstantEntry{
				Variable:  "gas_price_per_therm",
				Locality:  "Wayland",
				ValidFrom: utils.EpochSentinel,
				Value:     1.40,
				Reference: "winter filing",
			}
			require.NoError(t, repo.UpsertByKey(ctx, update))
			assert.Equal(t, firstID, update.ID)

			found, err := repo.ByKey(ctx, update)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, 1.40, found.Value)
			assert.Equal(t, "winter filing", found.Reference)

			count, err := repo.Count(ctx, models.ConstantEntryFilter{Variable: utils.ToPtr("gas_price_per_therm")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		t.Run("ByKeyMissing", func(t *testing.T) {
			found, err := repo.ByKey(ctx, &models.ConstantEntry{
				Variable:  "no_such_variable",
				Locality:  utils.DefaultLocality,
				ValidFrom: utils.EpochSentinel,
			})
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("LoadAllOrdered", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateTestConstant("solar_annual_kwh_per_kw", "default", utils.EpochSentinel, 1200)
			require.NoError(t, err)
			_, err = fixtures.CreateTestConstant("elec_lbs_co2_per_kwh", "default", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0.68)
			require.NoError(t, err)
			_, err = fixtures.CreateTestConstant("elec_lbs_co2_per_kwh", "default", utils.EpochSentinel, 0.75)
			require.NoError(t, err)

			rows, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 3)
			assert.Equal(t, "elec_lbs_co2_per_kwh", rows[0].Variable)
			assert.True(t, rows[0].ValidFrom.Before(rows[1].ValidFrom))
			assert.Equal(t, "solar_annual_kwh_per_kw", rows[2].Variable)
		})

		t.Run("ListLatestPerKey", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateTestConstant("elec_price_per_kwh", "default", utils.EpochSentinel, 0.2209)
			require.NoError(t, err)
			_, err = fixtures.CreateTestConstant("elec_price_per_kwh", "default", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0.2548)
			require.NoError(t, err)
			_, err = fixtures.CreateTestConstant("elec_price_per_kwh", "Wayland", utils.EpochSentinel, 0.2389)
			require.NoError(t, err)

			rows, err := repo.ListLatestPerKey(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 2)
			byLocality := map[string]float64{}
			for _, r := range rows {
				byLocality[r.Locality] = r.Value
			}
			assert.Equal(t, 0.2548, byLocality["default"])
			assert.Equal(t, 0.2389, byLocality["Wayland"])
		})

		t.Run("DeleteDuplicates", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateDefaultConstant("compost_bin_cost", 50)
			require.NoError(t, err)
			_, err = fixtures.CreateDefaultConstant("compost_bin_cost", 60)
			require.NoError(t, err)

			removed, err := repo.DeleteDuplicates(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), removed)

			rows, err := repo.LoadAll(ctx)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			// Lowest id survives.
			assert.Equal(t, 50.0, rows[0].Value)
		})

		t.Run("ByFilter", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateDefaultConstant("oil_price_per_gallon", 2.85)
			require.NoError(t, err)
			_, err = fixtures.CreateTestConstant("oil_price_per_gallon", "Concord", utils.EpochSentinel, 2.95)
			require.NoError(t, err)

			rows, err := repo.ByFilter(ctx, models.ConstantEntryFilter{Locality: utils.ToPtr("Concord")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, 2.95, rows[0].Value)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestActionDefinitionRepository(t *testing.T) {
	requireTestDB(t)
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewActionDefinitionRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("ByName", func(t *testing.T) {
			_, err := fixtures.CreateTestAction("community_solar", "Home Energy", 400, "community_solar,monthly_elec_bill")
			require.NoError(t, err)

			found, err := repo.ByName(ctx, "community_solar")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Home Energy", found.Category)
			assert.Equal(t, []string{"community_solar", "monthly_elec_bill"}, found.Questions())
		})

		t.Run("ByNameMissing", func(t *testing.T) {
			found, err := repo.ByName(ctx, "no_such_action")
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("UpsertByNameOverwrites", func(t *testing.T) {
			action := &models.ActionDefinition{Name: "led_swap", Title: "Swap to LEDs", Category: "Home Energy", AveragePoints: 300}
			require.NoError(t, repo.UpsertByName(ctx, action))
			firstID := action.ID

			update := &models.ActionDefinition{Name: "led_swap", Title: "Swap bulbs to LEDs", Category: "Home Energy", AveragePoints: 320}
			require.NoError(t, repo.UpsertByName(ctx, update))
			assert.Equal(t, firstID, update.ID)

			found, err := repo.ByName(ctx, "led_swap")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "Swap bulbs to LEDs", found.Title)
			assert.Equal(t, 320.0, found.AveragePoints)
		})

		t.Run("ListAll", func(t *testing.T) {
			rows, err := repo.ListAll(ctx)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, len(rows), 2)
		})

		t.Run("ByFilterCategory", func(t *testing.T) {
			_, err := fixtures.CreateTestAction("replace_car", "Transportation", 6700, "")
			require.NoError(t, err)

			rows, err := repo.ByFilter(ctx, models.ActionDefinitionFilter{Category: utils.ToPtr("Transportation")}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "replace_car", rows[0].Name)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestQuestionDefinitionRepository(t *testing.T) {
	requireTestDB(t)
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewQuestionDefinitionRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("ChoiceQuestionRoundTrip", func(t *testing.T) {
			_, err := fixtures.CreateTestQuestion("heating_fuel", "Home Heating",
				"Fuel Oil", "Natural Gas", "Propane", "Electric Resistance", "Electric Heat Pump", "Wood")
			require.NoError(t, err)

			found, err := repo.ByName(ctx, "heating_fuel")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, models.QuestionTypeChoice, found.ResponseType)
			responses := found.Responses()
			require.Len(t, responses, 6)
			assert.Equal(t, "Fuel Oil", responses[0].Text)
			assert.Equal(t, "Wood", responses[5].Text)
		})

		t.Run("NumberQuestionBounds", func(t *testing.T) {
			_, err := fixtures.CreateNumberQuestion("monthly_elec_bill", "Home Energy", 20, 1000, 150)
			require.NoError(t, err)

			found, err := repo.ByName(ctx, "monthly_elec_bill")
			require.NoError(t, err)
			require.NotNil(t, found)
			require.NotNil(t, found.MinimumValue)
			require.NotNil(t, found.TypicalValue)
			assert.Equal(t, 20.0, *found.MinimumValue)
			assert.Equal(t, 150.0, *found.TypicalValue)
		})

		t.Run("UpsertByName", func(t *testing.T) {
			q := &models.QuestionDefinition{
				Name:         "family_size",
				Category:     "Food & Waste",
				QuestionText: "How many people live in your home?",
				ResponseType: models.QuestionTypeNumber,
			}
			require.NoError(t, repo.UpsertByName(ctx, q))

			q.QuestionText = "How many people are in your household?"
			require.NoError(t, repo.UpsertByName(ctx, q))

			found, err := repo.ByName(ctx, "family_size")
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "How many people are in your household?", found.QuestionText)

			count, err := repo.Count(ctx, models.QuestionDefinitionFilter{Name: utils.ToPtr("family_size")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCalculatorVersionRepository(t *testing.T) {
	requireTestDB(t)
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewCalculatorVersionRepository(testDB.DB)
		ctx := testingutil.CreateTestContext()

		t.Run("CurrentEmpty", func(t *testing.T) {
			current, err := repo.Current(ctx)
			require.NoError(t, err)
			assert.Nil(t, current)
		})

		t.Run("SaveThenCurrent", func(t *testing.T) {
			record := &models.CalculatorVersion{
				Version:       "4.0.1",
				DefaultsMTime: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
				ImportedAt:    utils.UTCNow(),
			}
			require.NoError(t, repo.Save(ctx, record))
			require.NotZero(t, record.ID)

			current, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, current)
			assert.Equal(t, "4.0.1", current.Version)

			current.Version = "4.0.2"
			require.NoError(t, repo.Update(ctx, current))

			again, err := repo.Current(ctx)
			require.NoError(t, err)
			require.NotNil(t, again)
			assert.Equal(t, "4.0.2", again.Version)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestEstimateRecordRepository(t *testing.T) {
	requireTestDB(t)
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		repo := repository.NewEstimateRecordRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("SaveAndByUUID", func(t *testing.T) {
			record, err := fixtures.CreateTestEstimateRecord("community_solar", "Wayland", models.EstimateStatusValid, 408)
			require.NoError(t, err)

			found, err := repo.ByUUID(ctx, record.UUID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "community_solar", found.ActionName)
			assert.Equal(t, 408.0, found.CarbonPoints)
		})

		t.Run("ByUUIDMissing", func(t *testing.T) {
			found, err := repo.ByUUID(ctx, uuid.New())
			require.NoError(t, err)
			assert.Nil(t, found)
		})

		t.Run("FilterAndCount", func(t *testing.T) {
			require.NoError(t, testDB.ClearAllTables())
			_, err := fixtures.CreateTestEstimateRecord("community_solar", "Wayland", models.EstimateStatusValid, 408)
			require.NoError(t, err)
			_, err = fixtures.CreateTestEstimateRecord("community_solar", "Concord", models.EstimateStatusValid, 65)
			require.NoError(t, err)
			_, err = fixtures.CreateTestEstimateRecord("unknown_action", "Wayland", models.EstimateStatusInvalid, 0)
			require.NoError(t, err)

			count, err := repo.Count(ctx, models.EstimateRecordFilter{Community: utils.ToPtr("Wayland")})
			require.NoError(t, err)
			assert.Equal(t, int64(2), count)

			rows, err := repo.ByFilter(ctx, models.EstimateRecordFilter{Status: utils.ToPtr(models.EstimateStatusInvalid)}, "", 0, 0)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, "unknown_action", rows[0].ActionName)

			future := utils.UTCNow().Add(time.Hour)
			count, err = repo.Count(ctx, models.EstimateRecordFilter{CreatedAfter: &future})
			require.NoError(t, err)
			assert.Equal(t, int64(0), count)
		})

		return nil
	})
	require.NoError(t, err)
}
