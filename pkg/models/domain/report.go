package domain

// Frequency is the payment cadence of an MCA obligation.
type Frequency string

const (
	FrequencyWeekly Frequency = "weekly"
	FrequencyDaily  Frequency = "daily"
)

// TermUnit returns the unit a term count is expressed in for this cadence.
func (f Frequency) TermUnit() string {
	if f == FrequencyWeekly {
		return "weeks"
	}
	return "days"
}

// PositionStatus tells whether a position is still pulling payments.
type PositionStatus string

const (
	StatusActive  PositionStatus = "active"
	StatusStopped PositionStatus = "stopped"
)

// Position is one recurring MCA payment obligation extracted from a report.
type Position struct {
	Index     int
	Lender    string
	Amount    float64 // per-period payment
	Frequency Frequency
	LastPull  string // date as written in the report, not validated
	Status    PositionStatus
}

// LastDeposit is the most recent funding event found in a report. Amount is
// the net the business actually received; Payment is the recurring payment
// tied to the same obligation.
type LastDeposit struct {
	Amount    float64
	Date      string
	Lender    string
	Payment   float64
	Frequency Frequency
}

// ReportFacts holds everything extracted from an FCS report. Every field is
// best-effort: a zero value or nil pointer means the report didn't carry it.
// Only AvgRevenue is required downstream.
type ReportFacts struct {
	BusinessName         string
	Industry             string
	State                string
	TimeInBusiness       string
	AvgRevenue           float64
	NegativeDays         *int
	AvgNegativeDays      *float64
	AvgBankBalance       *float64
	CurrentPositionCount *int
	NextPosition         *int
	Positions            []Position
	LastDeposit          *LastDeposit
}

// ActivePositions returns the positions still pulling payments, in report order.
func (r ReportFacts) ActivePositions() []Position {
	var active []Position
	for _, p := range r.Positions {
		if p.Status == StatusActive {
			active = append(active, p)
		}
	}
	return active
}
