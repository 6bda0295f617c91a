package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dannyatorres/fcs-analyzer/pkg/models/api"
	"github.com/dannyatorres/fcs-analyzer/pkg/models/domain"
	"github.com/dannyatorres/fcs-analyzer/pkg/services/fcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) Analyze(ctx context.Context, text string, withhold float64) (domain.Analysis, error) {
	args := m.Called(ctx, text, withhold)
	return args.Get(0).(domain.Analysis), args.Error(1)
}

type stubLenders struct {
	profiles    map[string]domain.LenderProfile
	reloadCount int
	reloadErr   error
}

func (s *stubLenders) Match(name string) *domain.LenderProfile { return nil }
func (s *stubLenders) List() map[string]domain.LenderProfile   { return s.profiles }
func (s *stubLenders) Reload() (int, error)                    { return s.reloadCount, s.reloadErr }

func TestHandler_Health(t *testing.T) {
	handler := NewHandler(new(mockAnalyzer), &stubLenders{})

	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response api.Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "online", response.Status)
}

func TestHandler_Analyze(t *testing.T) {
	negDays := 3
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockAnalyzer)
		expectedStatus int
		check          func(*testing.T, []byte)
	}{
		{
			name: "successful analysis",
			body: `{"fcs_text": "report", "additional_withhold": 12}`,
			setupMock: func(m *mockAnalyzer) {
				m.On("Analyze", mock.Anything, "report", 12.0).Return(domain.Analysis{
					Facts: domain.ReportFacts{
						BusinessName: "Riverside Auto Group LLC",
						AvgRevenue:   150000,
						NegativeDays: &negDays,
					},
					Withholding: domain.WithholdingResult{
						Total: 8.4,
						Breakdown: []domain.WithholdingEntry{{
							Lender:         "Forward Financing",
							Payment:        3000,
							Frequency:      domain.FrequencyWeekly,
							DailyRate:      600,
							MonthlyPayment: 12600,
							WithholdPct:    8.4,
						}},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.AnalyzeResponse
				require.NoError(t, json.Unmarshal(body, &response))
				require.NotNil(t, response.BusinessOverview.Name)
				assert.Equal(t, "Riverside Auto Group LLC", *response.BusinessOverview.Name)
				assert.Nil(t, response.BusinessOverview.Industry)
				assert.Equal(t, 8.4, response.Withholding.Total)
				assert.Nil(t, response.LastPositionAnalysis)
				assert.Nil(t, response.AffordableFunding)
			},
		},
		{
			name: "missing revenue surfaces as 400",
			body: `{"fcs_text": "no numbers here"}`,
			setupMock: func(m *mockAnalyzer) {
				m.On("Analyze", mock.Anything, "no numbers here", 0.0).
					Return(domain.Analysis{}, fcs.ErrNoRevenue)
			},
			expectedStatus: http.StatusBadRequest,
			check: func(t *testing.T, body []byte) {
				var response api.Error
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Contains(t, response.Error, "Average True Revenue")
			},
		},
		{
			name: "internal failure surfaces as 500",
			body: `{"fcs_text": "report"}`,
			setupMock: func(m *mockAnalyzer) {
				m.On("Analyze", mock.Anything, "report", 0.0).
					Return(domain.Analysis{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "invalid body",
			body:           `{"fcs_text": `,
			setupMock:      func(m *mockAnalyzer) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(mockAnalyzer)
			tt.setupMock(analyzer)
			handler := NewHandler(analyzer, &stubLenders{})

			req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.Analyze(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
			analyzer.AssertExpectations(t)
		})
	}
}

func TestHandler_ReloadProfiles(t *testing.T) {
	handler := NewHandler(new(mockAnalyzer), &stubLenders{reloadCount: 4})

	rec := httptest.NewRecorder()
	handler.ReloadProfiles(rec, httptest.NewRequest("POST", "/api/reload-profiles", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response api.ReloadResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, 4, response.ProfileCount)
}

func TestHandler_ReloadProfilesFailure(t *testing.T) {
	handler := NewHandler(new(mockAnalyzer), &stubLenders{reloadErr: errors.New("bad file")})

	rec := httptest.NewRecorder()
	handler.ReloadProfiles(rec, httptest.NewRequest("POST", "/api/reload-profiles", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_ListLenders(t *testing.T) {
	handler := NewHandler(new(mockAnalyzer), &stubLenders{profiles: map[string]domain.LenderProfile{
		"ondeck": {
			Aliases:           []string{"ondeck"},
			TypicalFactor:     1.35,
			FactorRange:       []float64{1.25, 1.45},
			TypicalTermsDaily: []int{110, 120},
			TypicalFeeRange:   []float64{0.03, 0.08},
		},
	}})

	rec := httptest.NewRecorder()
	handler.ListLenders(rec, httptest.NewRequest("GET", "/api/lenders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]api.LenderProfile
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	require.Contains(t, response, "ondeck")
	assert.Equal(t, 1.35, response["ondeck"].TypicalFactor)
	assert.Equal(t, []int{110, 120}, response["ondeck"].TypicalTermsDaily)
}

func TestScenarioFormatting(t *testing.T) {
	analysis := domain.Analysis{
		Facts: domain.ReportFacts{AvgRevenue: 150000},
		LastPosition: &domain.PositionAnalysis{
			Scenarios: []domain.Scenario{{
				Term:            24,
				TermUnit:        "weeks",
				Payment:         3000,
				Frequency:       domain.FrequencyWeekly,
				OriginalFunding: 50000,
				Deposit:         47500,
				Fee:             2500,
				FeePercent:      0.05,
				TotalPayback:    72000,
				Factor:          1.44,
				Likelihood:      domain.LikelihoodRealistic,
			}},
			Deposit: domain.LastDeposit{Amount: 47500, Lender: "Forward Financing"},
		},
	}

	response := ToAnalyzeResponse(analysis)

	require.NotNil(t, response.LastPositionAnalysis)
	scenario := response.LastPositionAnalysis.Scenarios[0]
	assert.Equal(t, "5.0", scenario.FeePercent)
	assert.Equal(t, "1.44", scenario.Factor)
	assert.Nil(t, response.LastPositionAnalysis.LenderProfile)
}
