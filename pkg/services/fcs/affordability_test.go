package fcs

import (
	"testing"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestProjectAffordableFunding_Weekly(t *testing.T) {
	scenario := domain.Scenario{
		Term:     20,
		TermUnit: "weeks",
		Factor:   1.2,
	}

	result := ProjectAffordableFunding(10, 150000, scenario, domain.FrequencyWeekly)

	// 10% of 150,000 = 15,000/month; /21 days * 5 pulls = 3,571.43/week.
	assert.Equal(t, 3571.43, result.AvailablePayment)
	assert.Equal(t, domain.FrequencyWeekly, result.Frequency)
	assert.Equal(t, 20, result.Term)
	assert.Equal(t, "weeks", result.TermUnit)
	assert.Equal(t, 1.2, result.Factor)
	assert.Equal(t, 71428.57, result.TotalPayback)
	assert.Equal(t, 59524.0, result.AffordableFunding)
	assert.Equal(t, 10.0, result.AdditionalWithhold)
}

func TestProjectAffordableFunding_Daily(t *testing.T) {
	scenario := domain.Scenario{
		Term:     120,
		TermUnit: "days",
		Factor:   1.5,
	}

	result := ProjectAffordableFunding(10, 105000, scenario, domain.FrequencyDaily)

	// 10% of 105,000 = 10,500/month; /21 days = 500/day.
	assert.Equal(t, 500.0, result.AvailablePayment)
	assert.Equal(t, 60000.0, result.TotalPayback)
	assert.Equal(t, 40000.0, result.AffordableFunding)
}

func TestProjectAffordableFunding_FactorRoundedToTwoDecimals(t *testing.T) {
	scenario := domain.Scenario{Term: 40, TermUnit: "weeks", Factor: 1.448275862}

	result := ProjectAffordableFunding(5, 100000, scenario, domain.FrequencyWeekly)

	assert.Equal(t, 1.45, result.Factor)
}
