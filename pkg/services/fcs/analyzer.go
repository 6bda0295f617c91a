package fcs

import (
	"context"
	"errors"
	"strings"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ErrNoRevenue is the only hard failure an analysis can produce: without an
// average revenue figure none of the downstream numbers mean anything.
var ErrNoRevenue = errors.New("could not find Average True Revenue in the report")

// DefaultAdditionalWithhold is the incremental withholding tolerance applied
// when the caller doesn't supply one, in percentage points of revenue.
const DefaultAdditionalWithhold = 10.0

// LenderDirectory resolves a free-text lender name to a profile, or nil when
// nothing in the directory matches.
type LenderDirectory interface {
	Match(name string) *domain.LenderProfile
}

// Analyzer runs a complete FCS analysis: parse, withholding, scenario
// reconstruction for the last deposit, and affordable-funding projection.
type Analyzer interface {
	Analyze(ctx context.Context, reportText string, additionalWithhold float64) (domain.Analysis, error)
}

type analyzer struct {
	lenders LenderDirectory
}

func NewAnalyzer(lenders LenderDirectory) Analyzer {
	return &analyzer{lenders: lenders}
}

func (a *analyzer) Analyze(ctx context.Context, reportText string, additionalWithhold float64) (domain.Analysis, error) {
	logger := zerolog.Ctx(ctx)

	facts := ParseReport(reportText)
	if facts.AvgRevenue <= 0 {
		return domain.Analysis{}, ErrNoRevenue
	}

	if additionalWithhold <= 0 {
		additionalWithhold = DefaultAdditionalWithhold
	}

	active := facts.ActivePositions()
	analysis := domain.Analysis{
		Facts:       facts,
		Withholding: CalculateWithholding(active, facts.AvgRevenue),
	}

	if facts.LastDeposit == nil {
		return analysis, nil
	}

	deposit := *facts.LastDeposit
	payment, frequency := deposit.Payment, deposit.Frequency
	if payment == 0 || frequency == "" {
		// The deposit line didn't carry its own payment; fall back to the
		// active position whose lender name looks like the deposit's.
		if pos := matchDepositToPosition(deposit.Lender, active); pos != nil {
			payment, frequency = pos.Amount, pos.Frequency
		}
	}
	if payment == 0 || frequency == "" {
		logger.Debug().Str("lender", deposit.Lender).Msg("no payment resolved for last deposit, skipping scenario analysis")
		return analysis, nil
	}

	profile := a.lenders.Match(deposit.Lender)
	positionAnalysis := ReconstructScenarios(deposit, payment, frequency, profile)
	analysis.LastPosition = &positionAnalysis

	if len(positionAnalysis.Scenarios) > 0 {
		affordable := ProjectAffordableFunding(additionalWithhold, facts.AvgRevenue, positionAnalysis.Scenarios[0], frequency)
		analysis.Affordable = &affordable
	}

	return analysis, nil
}

// matchDepositToPosition pairs a deposit with an active position by lender
// name: space-stripped 10-character prefixes containing each other, or equal
// 5-character prefixes. Coarser than directory alias matching since both
// names here come from the same report.
func matchDepositToPosition(depositLender string, active []domain.Position) *domain.Position {
	depositKey := lenderKey(depositLender, 10)
	for i := range active {
		posKey := lenderKey(active[i].Lender, 10)
		if strings.Contains(posKey, depositKey) || strings.Contains(depositKey, posKey) ||
			lenderKey(depositLender, 5) == lenderKey(active[i].Lender, 5) {
			return &active[i]
		}
	}
	return nil
}

func lenderKey(name string, length int) string {
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	if len(key) > length {
		key = key[:length]
	}
	return key
}
