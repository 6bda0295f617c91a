package fcs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
)

// Field patterns mirror the wording used by the FCS report generator. Every
// extraction is independent: a pattern that doesn't match simply leaves its
// field empty.
var (
	summaryRe = regexp.MustCompile(`(?i)\d{1,2}-Month Summary\s*([\s\S]*?)(\n\n|$)`)

	businessNameRe = regexp.MustCompile(`(?i)Business Name:\s*(.+)`)
	positionLineRe = regexp.MustCompile(`(?i)Position \(ASSUME NEXT\):\s*(\d+)\s*active.*?(\d+)(?:st|nd|rd|th)`)
	industryRe     = regexp.MustCompile(`(?i)Industry:\s*(.+)`)
	timeInBizRe    = regexp.MustCompile(`(?i)Time in Business:\s*(.+)`)
	revenueRe      = regexp.MustCompile(`(?i)Average True Revenue:\s*\$?([\d,]+\.?\d*)`)
	negativeDaysRe = regexp.MustCompile(`(?i)Negative Days:\s*(\d+)`)
	avgNegativeRe  = regexp.MustCompile(`(?i)Average Negative Days:\s*([\d.]+)`)
	bankBalanceRe  = regexp.MustCompile(`(?i)Average Bank Balance:\s*\$?([\d,]+\.?\d*)`)
	stateRe        = regexp.MustCompile(`(?i)State:\s*([A-Za-z]{2})`)

	// Lender name is whatever sits between "from" and the opening parenthesis.
	lastDepositRe = regexp.MustCompile(`(?i)Last MCA Deposit:\s*\$?([\d,]+\.?\d*)\s*on\s*([\d/]+)\s*from\s*(.+?)\s*\(\$?([\d,]+\.?\d*)\s+(weekly|daily)\)`)

	// Amount may carry a leading tilde marking an approximation; it has no
	// numeric meaning.
	positionRe = regexp.MustCompile(`(?i)Position (\d+):\s*(.+?)\s*-\s*~?\$?([\d,]+\.?\d*)\s*(weekly|daily)\s*\nLast pull:\s*([\d/]+)\s*-\s*Status:\s*(Active|Stopped)`)
)

// ParseReport extracts structured facts from raw FCS report text. It never
// fails: missing or malformed fields are left absent and error surfacing is
// deferred to the analyzer.
func ParseReport(text string) domain.ReportFacts {
	var facts domain.ReportFacts

	if m := summaryRe.FindStringSubmatch(text); m != nil {
		parseSummary(m[1], &facts)
	}

	if m := lastDepositRe.FindStringSubmatch(text); m != nil {
		facts.LastDeposit = &domain.LastDeposit{
			Amount:    parseMoney(m[1]),
			Date:      m[2],
			Lender:    strings.TrimSpace(m[3]),
			Payment:   parseMoney(m[4]),
			Frequency: domain.Frequency(strings.ToLower(m[5])),
		}
	}

	for _, m := range positionRe.FindAllStringSubmatch(text, -1) {
		index, _ := strconv.Atoi(m[1])
		facts.Positions = append(facts.Positions, domain.Position{
			Index:     index,
			Lender:    strings.TrimSpace(m[2]),
			Amount:    parseMoney(m[3]),
			Frequency: domain.Frequency(strings.ToLower(m[4])),
			LastPull:  m[5],
			Status:    domain.PositionStatus(strings.ToLower(m[6])),
		})
	}

	return facts
}

// parseSummary fills the per-business fields, all scoped to the summary block.
func parseSummary(summary string, facts *domain.ReportFacts) {
	if m := businessNameRe.FindStringSubmatch(summary); m != nil {
		facts.BusinessName = strings.TrimSpace(m[1])
	}
	if m := positionLineRe.FindStringSubmatch(summary); m != nil {
		count, _ := strconv.Atoi(m[1])
		next, _ := strconv.Atoi(m[2])
		facts.CurrentPositionCount = &count
		facts.NextPosition = &next
	}
	if m := industryRe.FindStringSubmatch(summary); m != nil {
		facts.Industry = strings.TrimSpace(m[1])
	}
	if m := timeInBizRe.FindStringSubmatch(summary); m != nil {
		facts.TimeInBusiness = strings.TrimSpace(m[1])
	}
	if m := revenueRe.FindStringSubmatch(summary); m != nil {
		facts.AvgRevenue = parseMoney(m[1])
	}
	if m := negativeDaysRe.FindStringSubmatch(summary); m != nil {
		days, _ := strconv.Atoi(m[1])
		facts.NegativeDays = &days
	}
	if m := avgNegativeRe.FindStringSubmatch(summary); m != nil {
		if avg, err := strconv.ParseFloat(m[1], 64); err == nil {
			facts.AvgNegativeDays = &avg
		}
	}
	if m := bankBalanceRe.FindStringSubmatch(summary); m != nil {
		balance := parseMoney(m[1])
		facts.AvgBankBalance = &balance
	}
	if m := stateRe.FindStringSubmatch(summary); m != nil {
		facts.State = strings.ToUpper(m[1])
	}
}

// parseMoney converts an amount that may carry thousands separators.
func parseMoney(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return v
}
