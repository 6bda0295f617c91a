package fcs

import (
	"math"
	"sort"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
)

// Funded amounts come in clean denominations; fees keep the factor inside the
// band this product is actually priced at.
const (
	maxFeePercent = 0.10
	minFactor     = 1.20
	maxFactor     = 1.60
)

// Fallback profiles for lenders missing from the directory, keyed by cadence.
var (
	genericWeeklyProfile = domain.LenderProfile{
		TypicalFactor:      1.45,
		FactorRange:        []float64{1.35, 1.55},
		TypicalTermsWeekly: []int{40, 42, 44, 46, 48, 50},
		TypicalFeeRange:    []float64{0.02, 0.08},
	}
	genericDailyProfile = domain.LenderProfile{
		TypicalFactor:     1.45,
		FactorRange:       []float64{1.35, 1.55},
		TypicalTermsDaily: []int{100, 110, 120, 130, 140},
		TypicalFeeRange:   []float64{0.05, 0.10},
	}
)

type fundingCandidate struct {
	amount     float64
	fee        float64
	feePercent float64
}

// ReconstructScenarios enumerates plausible original funding amounts and
// terms behind an observed deposit, scores each combination against the
// lender's (or a generic) profile, and returns at most 10 deduplicated
// scenarios in ascending term order. The passed profile may be nil.
func ReconstructScenarios(
	deposit domain.LastDeposit,
	payment float64,
	frequency domain.Frequency,
	profile *domain.LenderProfile,
) domain.PositionAnalysis {
	candidates := feasibleCandidates(deposit.Amount)
	terms := candidateTerms(frequency)

	var scenarios []domain.Scenario
	for _, c := range candidates {
		for _, term := range terms {
			totalPayback := payment * float64(term)
			factor := totalPayback / c.amount
			if factor < minFactor || factor > maxFactor {
				continue
			}
			scenarios = append(scenarios, domain.Scenario{
				Term:            term,
				TermUnit:        frequency.TermUnit(),
				Payment:         payment,
				Frequency:       frequency,
				OriginalFunding: math.Round(c.amount),
				Deposit:         deposit.Amount,
				Fee:             math.Round(c.fee),
				FeePercent:      c.feePercent,
				TotalPayback:    math.Round(totalPayback),
				Factor:          factor,
				Likelihood:      likelihoodForFactor(factor),
			})
		}
	}

	scoreScenarios(scenarios, profile, frequency)

	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].IntelligenceScore > scenarios[j].IntelligenceScore
	})

	scenarios = dedupeByTerm(scenarios)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Term < scenarios[j].Term })
	if len(scenarios) > 10 {
		scenarios = scenarios[:10]
	}

	return domain.PositionAnalysis{
		Scenarios:     scenarios,
		LenderProfile: profile,
		Deposit:       deposit,
	}
}

// feasibleCandidates buckets the deposit into a denomination tier, generates a
// window of clean amounts around it, and keeps those whose implied fee is
// non-negative and at most 10%. Candidates are ordered best fee band first.
func feasibleCandidates(depositAmount float64) []fundingCandidate {
	var increment float64
	var above int
	switch {
	case depositAmount < 25000:
		increment, above = 5000, 4
	case depositAmount < 100000:
		increment, above = 10000, 4
	case depositAmount < 250000:
		increment, above = 25000, 3
	default:
		increment, above = 50000, 3
	}

	base := math.Floor(depositAmount/increment) * increment
	var candidates []fundingCandidate
	for i := -1; i < above; i++ {
		amount := base + float64(i)*increment
		// The gross must cover the net: fees are deducted, never added.
		if amount < depositAmount || amount <= 0 {
			continue
		}
		fee := amount - depositAmount
		feePercent := fee / amount
		if feePercent > maxFeePercent {
			continue
		}
		candidates = append(candidates, fundingCandidate{amount: amount, fee: fee, feePercent: feePercent})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return feeBand(candidates[i].feePercent) < feeBand(candidates[j].feePercent)
	})
	return candidates
}

// feeBand ranks fee plausibility: 3-5% is what lenders typically charge, a
// token 0-2% fee is next, 6-10% is steep but seen.
func feeBand(feePercent float64) int {
	switch {
	case feePercent >= 0.03 && feePercent <= 0.05:
		return 1
	case feePercent >= 0 && feePercent <= 0.02:
		return 2
	case feePercent >= 0.06 && feePercent <= 0.10:
		return 3
	default:
		return 4
	}
}

// candidateTerms enumerates the term grid for a cadence: even week counts
// from 10 to 70, or day counts in tens from 60 to 220.
func candidateTerms(frequency domain.Frequency) []int {
	var terms []int
	if frequency == domain.FrequencyWeekly {
		for t := 10; t <= 70; t += 2 {
			terms = append(terms, t)
		}
		return terms
	}
	for t := 60; t <= 220; t += 10 {
		terms = append(terms, t)
	}
	return terms
}

// likelihoodForFactor grades a factor on its own, before lender knowledge is
// applied. 1.49 is the single most common price point for this product.
func likelihoodForFactor(factor float64) domain.Likelihood {
	switch {
	case math.Abs(factor-1.49) < 0.01:
		return domain.LikelihoodMostLikely
	case factor >= 1.42 && factor <= 1.55:
		return domain.LikelihoodRealistic
	case factor >= 1.30 && factor <= 1.41:
		return domain.LikelihoodPossibleLow
	case factor >= 1.56 && factor <= 1.60:
		return domain.LikelihoodPossibleHigh
	default:
		return domain.LikelihoodUnlikely
	}
}

// scoreScenarios assigns each scenario an additive intelligence score from
// the lender profile (or the generic fallback for the cadence) and upgrades
// likelihoods that the score vouches for.
func scoreScenarios(scenarios []domain.Scenario, profile *domain.LenderProfile, frequency domain.Frequency) {
	if profile == nil {
		if frequency == domain.FrequencyWeekly {
			profile = &genericWeeklyProfile
		} else {
			profile = &genericDailyProfile
		}
	}

	typicalTerms := profile.TypicalTerms(frequency)

	// A profile may omit typical_factor; 1.45 is the market-wide typical.
	typicalFactor := profile.TypicalFactor
	if typicalFactor == 0 {
		typicalFactor = 1.45
	}

	for i := range scenarios {
		s := &scenarios[i]
		// Score against the factor as reported (two decimals) so equal-looking
		// scenarios score equally.
		factor := round2(s.Factor)

		score := 0
		if profile.InFactorRange(factor) {
			score += 20
		}
		if math.Abs(factor-typicalFactor) < 0.05 {
			score += 30
		}

		if containsInt(typicalTerms, s.Term) {
			score += 25
		} else if nearest, ok := nearestInt(typicalTerms, s.Term); ok && abs(s.Term-nearest) <= 4 {
			score += 15
		}

		feePct := math.Round(s.FeePercent*1000) / 1000
		if profile.InFeeRange(feePct) {
			score += 10
		}

		s.IntelligenceScore = score
		if score >= 60 && s.Likelihood != domain.LikelihoodMostLikely && s.Likelihood != domain.LikelihoodRealistic {
			s.Likelihood = domain.LikelihoodRealistic
		} else if score >= 40 && s.Likelihood == domain.LikelihoodUnlikely {
			s.Likelihood = domain.LikelihoodPossibleLow
		}
	}
}

// dedupeByTerm keeps the first (highest-ranked) scenario per distinct term.
func dedupeByTerm(scenarios []domain.Scenario) []domain.Scenario {
	seen := make(map[int]bool, len(scenarios))
	var unique []domain.Scenario
	for _, s := range scenarios {
		if seen[s.Term] {
			continue
		}
		seen[s.Term] = true
		unique = append(unique, s)
	}
	return unique
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func nearestInt(values []int, v int) (int, bool) {
	if len(values) == 0 {
		return 0, false
	}
	nearest := values[0]
	for _, x := range values[1:] {
		if abs(x-v) < abs(nearest-v) {
			nearest = x
		}
	}
	return nearest, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
