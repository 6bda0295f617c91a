package domain

// Likelihood ranks how plausible a reconstructed scenario is.
type Likelihood string

const (
	LikelihoodMostLikely   Likelihood = "most-likely"
	LikelihoodRealistic    Likelihood = "realistic"
	LikelihoodPossibleLow  Likelihood = "possible-low"
	LikelihoodPossibleHigh Likelihood = "possible-high"
	LikelihoodUnlikely     Likelihood = "unlikely"
)

// Scenario is one hypothesis reconstructing the funding event behind an
// observed deposit: a term/factor/original-amount combination consistent
// with the recurring payment.
type Scenario struct {
	Term              int
	TermUnit          string
	Payment           float64
	Frequency         Frequency
	OriginalFunding   float64 // gross amount, whole dollars
	Deposit           float64 // observed net amount
	Fee               float64 // OriginalFunding - Deposit, whole dollars
	FeePercent        float64 // Fee / OriginalFunding, as a fraction
	TotalPayback      float64 // Payment * Term, whole dollars
	Factor            float64 // TotalPayback / OriginalFunding
	Likelihood        Likelihood
	IntelligenceScore int
}

// WithholdingEntry is one active position's contribution to the total
// withholding percentage.
type WithholdingEntry struct {
	Lender         string
	Payment        float64
	Frequency      Frequency
	DailyRate      float64
	MonthlyPayment float64
	WithholdPct    float64
}

// WithholdingResult is the share of monthly revenue consumed by active
// positions, with a per-position breakdown in report order.
type WithholdingResult struct {
	Total     float64
	Breakdown []WithholdingEntry
}

// PositionAnalysis is the ranked scenario reconstruction for the most recent
// deposit. LenderProfile is nil when the lender wasn't in the directory.
type PositionAnalysis struct {
	Scenarios     []Scenario
	LenderProfile *LenderProfile
	Deposit       LastDeposit
}

// AffordableFunding projects how much new funding the business could carry
// at a given incremental withholding tolerance, priced off one scenario.
type AffordableFunding struct {
	AvailablePayment   float64
	Frequency          Frequency
	Term               int
	TermUnit           string
	Factor             float64
	TotalPayback       float64
	AffordableFunding  float64
	AdditionalWithhold float64
}

// Analysis is the aggregate result of one end-to-end report analysis.
// LastPosition and Affordable are nil when the report lacked the data to
// produce them.
type Analysis struct {
	Facts        ReportFacts
	Withholding  WithholdingResult
	LastPosition *PositionAnalysis
	Affordable   *AffordableFunding
}
