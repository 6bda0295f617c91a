package domain

// LenderProfile describes a lender's typical deal economics, keyed by the
// directory. Ranges are [lo, hi] pairs; fee range is a fraction of the
// original funding amount.
type LenderProfile struct {
	Aliases            []string  `mapstructure:"aliases"`
	TypicalFactor      float64   `mapstructure:"typical_factor"`
	FactorRange        []float64 `mapstructure:"factor_range"`
	TypicalTermsWeekly []int     `mapstructure:"typical_terms_weekly"`
	TypicalTermsDaily  []int     `mapstructure:"typical_terms_daily"`
	TypicalFeeRange    []float64 `mapstructure:"typical_fee_range"`
}

// TypicalTerms returns the typical term list for the given cadence.
func (p LenderProfile) TypicalTerms(freq Frequency) []int {
	if freq == FrequencyWeekly {
		return p.TypicalTermsWeekly
	}
	return p.TypicalTermsDaily
}

// InFactorRange reports whether a factor falls inside the profile's range.
func (p LenderProfile) InFactorRange(factor float64) bool {
	return len(p.FactorRange) == 2 && p.FactorRange[0] <= factor && factor <= p.FactorRange[1]
}

// InFeeRange reports whether a fee fraction falls inside the profile's range.
func (p LenderProfile) InFeeRange(feePct float64) bool {
	return len(p.TypicalFeeRange) == 2 && p.TypicalFeeRange[0] <= feePct && feePct <= p.TypicalFeeRange[1]
}
