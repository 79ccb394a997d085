package checkout

import (
	"math"
	"testing"

	"dairyfront/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCost_DailyOneMonth(t *testing.T) {
	cost := CalculateCost(50, 2, models.FrequencyDaily, models.Plan1Month)

	assert.Equal(t, 100.0, cost.DailyCost)
	assert.Equal(t, 30, cost.TotalDeliveries)
	assert.Equal(t, 3000.0, cost.TotalCost)
	assert.Equal(t, 30, cost.DurationDays)
}

func TestCalculateCost_WeeklyRoundsUp(t *testing.T) {
	// 30 days at a 0.25 multiplier is 7.5 deliveries; partial counts round
	// up so the subscriber is never under-delivered.
	cost := CalculateCost(50, 2, models.FrequencyWeekly, models.Plan1Month)

	assert.Equal(t, 8, cost.TotalDeliveries)
	assert.Equal(t, 800.0, cost.TotalCost)
}

func TestCalculateCost_AlternateDays(t *testing.T) {
	cost := CalculateCost(25, 1, models.FrequencyAlternate, models.Plan15Days)

	assert.Equal(t, 8, cost.TotalDeliveries) // ceil(15 * 0.5)
	assert.Equal(t, 200.0, cost.TotalCost)
}

func TestCalculateCost_UnknownFrequencyDefaultsToDaily(t *testing.T) {
	got := CalculateCost(50, 2, "biweekly", models.Plan1Month)
	want := CalculateCost(50, 2, models.FrequencyDaily, models.Plan1Month)

	assert.Equal(t, want, got)
}

func TestCalculateCost_UnknownPlanDefaultsTo15Days(t *testing.T) {
	got := CalculateCost(50, 2, models.FrequencyDaily, "forever")

	assert.Equal(t, 15, got.DurationDays)
	assert.Equal(t, 15, got.TotalDeliveries)
}

func TestCalculateCost_OneTimeIsSingleDelivery(t *testing.T) {
	cost := CalculateCost(40, 3, models.FrequencyOneTime, models.Plan1Year)

	assert.Equal(t, 1, cost.TotalDeliveries)
	assert.Equal(t, 120.0, cost.TotalCost)
}

func TestCalculateCost_TotalIsMultipleOfDailyCost(t *testing.T) {
	frequencies := []string{models.FrequencyDaily, models.FrequencyAlternate, models.FrequencyWeekly}
	plans := []string{
		models.Plan15Days, models.Plan1Month, models.Plan2Months,
		models.Plan3Months, models.Plan6Months, models.Plan1Year,
	}

	for _, freq := range frequencies {
		for _, plan := range plans {
			cost := CalculateCost(35.5, 3, freq, plan)

			assert.Greater(t, cost.TotalDeliveries, 0, "%s/%s", freq, plan)
			ratio := cost.TotalCost / cost.DailyCost
			assert.InDelta(t, math.Round(ratio), ratio, 1e-9,
				"total for %s/%s must be a whole multiple of the daily cost", freq, plan)
		}
	}
}
