package checkout

import (
	"math"

	"dairyfront/models"
	"dairyfront/utils"

	"go.uber.org/zap"
)

// frequencyMultiplier maps a delivery frequency to the fraction of plan days
// on which a delivery happens. An unrecognized frequency falls back to daily
// with a logged warning so a corrupt value degrades the quote, not the
// checkout.
func frequencyMultiplier(frequency string) float64 {
	switch frequency {
	case models.FrequencyDaily:
		return 1.0
	case models.FrequencyAlternate:
		return 0.5
	case models.FrequencyWeekly:
		return 0.25
	default:
		utils.GetLogger().Warn("Unknown delivery frequency, defaulting to daily",
			zap.String("frequency", frequency))
		return 1.0
	}
}

// planDurationDays maps a subscription plan to its length in days. An
// unrecognized plan falls back to 15 days with a logged warning.
func planDurationDays(plan string) int {
	switch plan {
	case models.Plan15Days:
		return 15
	case models.Plan1Month:
		return 30
	case models.Plan2Months:
		return 60
	case models.Plan3Months:
		return 90
	case models.Plan6Months:
		return 180
	case models.Plan1Year:
		return 365
	default:
		utils.GetLogger().Warn("Unknown subscription plan, defaulting to 15 days",
			zap.String("plan", plan))
		return 15
	}
}

// CalculateCost derives the cost breakdown from its four inputs. It is a
// pure function of those inputs and is recomputed on every read; the result
// is never stored.
//
// Deliveries round up so a partial count never under-delivers against the
// paid period. A one-time frequency yields exactly one delivery.
func CalculateCost(pricePerDay float64, quantity int, frequency, plan string) models.CostBreakdown {
	durationDays := planDurationDays(plan)
	dailyCost := pricePerDay * float64(quantity)

	totalDeliveries := 1
	if frequency != models.FrequencyOneTime {
		totalDeliveries = int(math.Ceil(float64(durationDays) * frequencyMultiplier(frequency)))
	}

	return models.CostBreakdown{
		DailyCost:       dailyCost,
		TotalDeliveries: totalDeliveries,
		TotalCost:       dailyCost * float64(totalDeliveries),
		DurationDays:    durationDays,
	}
}
