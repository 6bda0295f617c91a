package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/api"
	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/fcs"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/lender"
	"github.com/rs/zerolog"
)

const apiVersion = "1.0.0"

type Handler struct {
	analyzer fcs.Analyzer
	lenders  lender.Directory
}

func NewHandler(analyzer fcs.Analyzer, lenders lender.Directory) *Handler {
	return &Handler{
		analyzer: analyzer,
		lenders:  lenders,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, http.StatusOK, api.Health{
		Status:  "online",
		Message: "FCS Analyzer API is running",
		Version: apiVersion,
	})
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(r, w, http.StatusBadRequest, api.Error{Error: "invalid request body"})
		return
	}

	analysis, err := h.analyzer.Analyze(ctx, req.FCSText, req.AdditionalWithhold)
	if errors.Is(err, fcs.ErrNoRevenue) {
		writeJSON(r, w, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("analysis failed")
		writeJSON(r, w, http.StatusInternalServerError, api.Error{Error: err.Error()})
		return
	}

	writeJSON(r, w, http.StatusOK, ToAnalyzeResponse(analysis))
}

func (h *Handler) ReloadProfiles(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	count, err := h.lenders.Reload()
	if err != nil {
		logger.Error().Err(err).Msg("lender profile reload failed")
		writeJSON(r, w, http.StatusInternalServerError, api.Error{Error: err.Error()})
		return
	}

	writeJSON(r, w, http.StatusOK, api.ReloadResult{
		Status:       "success",
		Message:      "Lender profiles reloaded",
		ProfileCount: count,
	})
}

func (h *Handler) ListLenders(w http.ResponseWriter, r *http.Request) {
	profiles := h.lenders.List()
	response := make(map[string]api.LenderProfile, len(profiles))
	for key, p := range profiles {
		response[key] = toLenderProfile(p)
	}
	writeJSON(r, w, http.StatusOK, response)
}

func writeJSON(r *http.Request, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func ToAnalyzeResponse(a domain.Analysis) api.AnalyzeResponse {
	response := api.AnalyzeResponse{
		BusinessOverview: api.BusinessOverview{
			Name:             optional(a.Facts.BusinessName),
			Industry:         optional(a.Facts.Industry),
			State:            optional(a.Facts.State),
			CurrentPositions: a.Facts.CurrentPositionCount,
			NextPosition:     a.Facts.NextPosition,
			AvgRevenue:       a.Facts.AvgRevenue,
			AvgBankBalance:   a.Facts.AvgBankBalance,
			NegativeDays:     a.Facts.NegativeDays,
			TimeInBusiness:   optional(a.Facts.TimeInBusiness),
		},
		Withholding: toWithholding(a.Withholding),
	}

	if a.LastPosition != nil {
		lastPosition := api.LastPositionAnalysis{
			Scenarios: make([]api.Scenario, 0, len(a.LastPosition.Scenarios)),
			Deposit: api.Deposit{
				Amount:    a.LastPosition.Deposit.Amount,
				Date:      a.LastPosition.Deposit.Date,
				Lender:    a.LastPosition.Deposit.Lender,
				Payment:   a.LastPosition.Deposit.Payment,
				Frequency: string(a.LastPosition.Deposit.Frequency),
			},
		}
		if a.LastPosition.LenderProfile != nil {
			profile := toLenderProfile(*a.LastPosition.LenderProfile)
			lastPosition.LenderProfile = &profile
		}
		for _, s := range a.LastPosition.Scenarios {
			lastPosition.Scenarios = append(lastPosition.Scenarios, api.Scenario{
				Term:              s.Term,
				TermUnit:          s.TermUnit,
				Payment:           s.Payment,
				Frequency:         string(s.Frequency),
				OriginalFunding:   s.OriginalFunding,
				Deposit:           s.Deposit,
				Fee:               s.Fee,
				FeePercent:        fmt.Sprintf("%.1f", s.FeePercent*100),
				TotalPayback:      s.TotalPayback,
				Factor:            fmt.Sprintf("%.2f", s.Factor),
				Likelihood:        string(s.Likelihood),
				IntelligenceScore: s.IntelligenceScore,
			})
		}
		response.LastPositionAnalysis = &lastPosition
	}

	if a.Affordable != nil {
		response.AffordableFunding = &api.AffordableFunding{
			AvailablePayment:   a.Affordable.AvailablePayment,
			Frequency:          string(a.Affordable.Frequency),
			Term:               a.Affordable.Term,
			TermUnit:           a.Affordable.TermUnit,
			Factor:             a.Affordable.Factor,
			TotalPayback:       a.Affordable.TotalPayback,
			AffordableFunding:  a.Affordable.AffordableFunding,
			AdditionalWithhold: a.Affordable.AdditionalWithhold,
		}
	}

	return response
}

func toWithholding(w domain.WithholdingResult) api.Withholding {
	result := api.Withholding{
		Total:     w.Total,
		Breakdown: make([]api.WithholdingEntry, 0, len(w.Breakdown)),
	}
	for _, entry := range w.Breakdown {
		result.Breakdown = append(result.Breakdown, api.WithholdingEntry{
			Lender:         entry.Lender,
			Payment:        entry.Payment,
			Frequency:      string(entry.Frequency),
			DailyRate:      entry.DailyRate,
			MonthlyPayment: entry.MonthlyPayment,
			WithholdPct:    entry.WithholdPct,
		})
	}
	return result
}

func toLenderProfile(p domain.LenderProfile) api.LenderProfile {
	return api.LenderProfile{
		Aliases:            p.Aliases,
		TypicalFactor:      p.TypicalFactor,
		FactorRange:        p.FactorRange,
		TypicalTermsWeekly: p.TypicalTermsWeekly,
		TypicalTermsDaily:  p.TypicalTermsDaily,
		TypicalFeeRange:    p.TypicalFeeRange,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
