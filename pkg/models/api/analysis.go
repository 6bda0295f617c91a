package api

// AnalyzeRequest is the POST /api/analyze body. AdditionalWithhold is in
// percentage points of revenue; zero or absent means the default of 10.
type AnalyzeRequest struct {
	FCSText            string  `json:"fcs_text"`
	AdditionalWithhold float64 `json:"additional_withhold"`
}

// BusinessOverview summarizes the business attributes pulled from the report.
// Pointer fields render as null when the report didn't carry them.
type BusinessOverview struct {
	Name             *string  `json:"name"`
	Industry         *string  `json:"industry"`
	State            *string  `json:"state"`
	CurrentPositions *int     `json:"currentPositions"`
	NextPosition     *int     `json:"nextPosition"`
	AvgRevenue       float64  `json:"avgRevenue"`
	AvgBankBalance   *float64 `json:"avgBankBalance"`
	NegativeDays     *int     `json:"negativeDays"`
	TimeInBusiness   *string  `json:"timeInBusiness"`
}

type WithholdingEntry struct {
	Lender         string  `json:"lender"`
	Payment        float64 `json:"payment"`
	Frequency      string  `json:"frequency"`
	DailyRate      float64 `json:"dailyRate"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	WithholdPct    float64 `json:"withholdPct"`
}

type Withholding struct {
	Total     float64            `json:"total"`
	Breakdown []WithholdingEntry `json:"breakdown"`
}

// Scenario is one reconstructed funding hypothesis. FeePercent carries one
// decimal place of percent and Factor two decimals, as the frontend expects.
type Scenario struct {
	Term              int     `json:"term"`
	TermUnit          string  `json:"termUnit"`
	Payment           float64 `json:"payment"`
	Frequency         string  `json:"frequency"`
	OriginalFunding   float64 `json:"originalFunding"`
	Deposit           float64 `json:"deposit"`
	Fee               float64 `json:"fee"`
	FeePercent        string  `json:"feePercent"`
	TotalPayback      float64 `json:"totalPayback"`
	Factor            string  `json:"factor"`
	Likelihood        string  `json:"likelihood"`
	IntelligenceScore int     `json:"intelligenceScore"`
}

// LenderProfile mirrors the profiles file field names so GET /api/lenders
// returns the directory verbatim.
type LenderProfile struct {
	Aliases            []string  `json:"aliases"`
	TypicalFactor      float64   `json:"typical_factor"`
	FactorRange        []float64 `json:"factor_range"`
	TypicalTermsWeekly []int     `json:"typical_terms_weekly"`
	TypicalTermsDaily  []int     `json:"typical_terms_daily"`
	TypicalFeeRange    []float64 `json:"typical_fee_range"`
}

type Deposit struct {
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Lender    string  `json:"lender"`
	Payment   float64 `json:"payment"`
	Frequency string  `json:"frequency"`
}

type LastPositionAnalysis struct {
	Scenarios     []Scenario     `json:"scenarios"`
	LenderProfile *LenderProfile `json:"lenderProfile"`
	Deposit       Deposit        `json:"deposit"`
}

type AffordableFunding struct {
	AvailablePayment   float64 `json:"availablePayment"`
	Frequency          string  `json:"frequency"`
	Term               int     `json:"term"`
	TermUnit           string  `json:"termUnit"`
	Factor             float64 `json:"factor"`
	TotalPayback       float64 `json:"totalPayback"`
	AffordableFunding  float64 `json:"affordableFunding"`
	AdditionalWithhold float64 `json:"additionalWithhold"`
}

type AnalyzeResponse struct {
	BusinessOverview     BusinessOverview      `json:"businessOverview"`
	Withholding          Withholding           `json:"withholding"`
	LastPositionAnalysis *LastPositionAnalysis `json:"lastPositionAnalysis"`
	AffordableFunding    *AffordableFunding    `json:"affordableFunding"`
}

type Error struct {
	Error string `json:"error"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

type ReloadResult struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ProfileCount int    `json:"profile_count"`
}
