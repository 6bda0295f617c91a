package fcs

import (
	"math"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
)

// ProjectAffordableFunding computes the funding a business could support if
// it gave up an extra additionalWithhold percentage points of revenue,
// assuming the chosen scenario's term and factor hold for the new deal.
func ProjectAffordableFunding(
	additionalWithhold float64,
	revenue float64,
	scenario domain.Scenario,
	frequency domain.Frequency,
) domain.AffordableFunding {
	availableMonthly := additionalWithhold / 100 * revenue
	availableDaily := availableMonthly / businessDaysPerMonth

	availablePayment := availableDaily
	if frequency == domain.FrequencyWeekly {
		availablePayment = availableDaily * pullsPerWeek
	}

	factor := round2(scenario.Factor)
	totalPayback := availablePayment * float64(scenario.Term)

	return domain.AffordableFunding{
		AvailablePayment:   round2(availablePayment),
		Frequency:          frequency,
		Term:               scenario.Term,
		TermUnit:           scenario.TermUnit,
		Factor:             factor,
		TotalPayback:       round2(totalPayback),
		AffordableFunding:  math.Round(totalPayback / factor),
		AdditionalWithhold: additionalWithhold,
	}
}
