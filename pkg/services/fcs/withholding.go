package fcs

import (
	"math"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
)

// Payment normalization conventions: weekly pulls land on the 5 banking days
// of a week, and a month carries 21 banking days.
const (
	pullsPerWeek         = 5
	businessDaysPerMonth = 21
)

// CalculateWithholding expresses the given positions' payments as a share of
// monthly revenue. Callers pass active positions only; input order is kept in
// the breakdown.
func CalculateWithholding(positions []domain.Position, revenue float64) domain.WithholdingResult {
	var result domain.WithholdingResult

	for _, pos := range positions {
		dailyRate := pos.Amount
		if pos.Frequency == domain.FrequencyWeekly {
			dailyRate = pos.Amount / pullsPerWeek
		}
		monthlyPayment := dailyRate * businessDaysPerMonth
		withholdPct := monthlyPayment / revenue * 100

		result.Total += withholdPct
		result.Breakdown = append(result.Breakdown, domain.WithholdingEntry{
			Lender:         pos.Lender,
			Payment:        pos.Amount,
			Frequency:      pos.Frequency,
			DailyRate:      round2(dailyRate),
			MonthlyPayment: round2(monthlyPayment),
			WithholdPct:    round2(withholdPct),
		})
	}

	result.Total = round2(result.Total)
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
