package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/helbflow/internal/advisor"
	"github.com/segyhp/helbflow/internal/cache"
	"github.com/segyhp/helbflow/internal/config"
	"github.com/segyhp/helbflow/internal/domain"
	"github.com/segyhp/helbflow/internal/events"
	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/repository"
	"github.com/segyhp/helbflow/internal/service"
	customError "github.com/segyhp/helbflow/pkg/errors"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

type testServer struct {
	t       *testing.T
	db      *sqlx.DB
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", URL: "file::memory:?_pragma=foreign_keys(1)"},
		Scheduler: config.SchedulerConfig{Timezone: "UTC"},
		Business: config.BusinessConfig{
			DefaultAlertThreshold:    "80",
			DefaultMonthlyIncome:     "15000",
			RecentDisbursementsLimit: 10,
			UpcomingRepaymentsLimit:  10,
		},
		Cache: config.CacheConfig{StatsTTL: "1m", ScheduleTTL: "1h"},
	}

	db, err := repository.Open(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.EnsureSchema(t.Context(), db))

	log := logger.Nop()
	var (
		students      = repository.NewStudentRepository(db)
		disbursements = repository.NewDisbursementRepository(db)
		transactions  = repository.NewTransactionRepository(db)
		budgets       = repository.NewBudgetRepository(db)
		loans         = repository.NewLoanRepository(db)
		advice        = repository.NewAdviceRepository(db)
		stats         = repository.NewStatsRepository(db)
		store         = cache.NopCache{}
		oracle        = advisor.Disabled{}
	)

	handlers := Handlers{
		Health:        NewHealthHandler(db, store, 0),
		Dashboard:     NewDashboardHandler(service.NewDashboardService(stats, store, cfg, log), log),
		Students:      NewStudentHandler(service.NewStudentService(students, log), log),
		Disbursements: NewDisbursementHandler(service.NewDisbursementService(disbursements, students, oracle, store, cfg, log), log),
		Transactions:  NewTransactionHandler(service.NewTransactionService(transactions, students, oracle, cfg, log), log),
		Budgets:       NewBudgetHandler(service.NewBudgetService(budgets, transactions, advice, students, oracle, cfg, log), log),
		Loans:         NewLoanHandler(service.NewLoanService(loans, students, store, events.NopPublisher{}, cfg, log), log),
		Advice:        NewAdviceHandler(service.NewAdviceService(advice, transactions, students, oracle, log), log),
	}

	return &testServer{t: t, db: db, handler: NewRouter(handlers, log)}
}

func (s *testServer) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(method, path, reader))

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func (s *testServer) createStudent(number string) domain.Student {
	s.t.Helper()

	rec, env := s.do(http.MethodPost, "/api/v1/students", map[string]any{
		"studentId":   number,
		"firstName":   "Wanjiru",
		"lastName":    "Kamau",
		"course":      "Economics",
		"institution": "Kenyatta University",
		"region":      "Kiambu",
		"year":        3,
		"semester":    1,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData[domain.Student](s.t, env)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = srv.do(http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeData[HealthStatus](t, env)
	assert.Equal(t, "ok", status.Checks["database"])
	assert.Equal(t, "ok", status.Checks["redis"])
}

func TestStudents(t *testing.T) {
	srv := newTestServer(t)

	student := srv.createStudent("KU-2024-001")
	assert.Equal(t, "KU-2024-001", student.StudentNumber)

	rec, env := srv.do(http.MethodPost, "/api/v1/students", map[string]any{
		"studentId": "KU-2024-001", "firstName": "A", "lastName": "B", "course": "C",
		"institution": "D", "region": "E", "year": 1, "semester": 1,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, customError.ErrCodeStudentAlreadyExists, env.Code)

	rec, env = srv.do(http.MethodPost, "/api/v1/students", map[string]any{"studentId": "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, customError.ErrCodeValidation, env.Code)

	rec, env = srv.do(http.MethodGet, "/api/v1/students/"+student.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, student.ID, decodeData[domain.Student](t, env).ID)

	rec, env = srv.do(http.MethodGet, "/api/v1/students/by-student-id/KU-2024-001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, student.ID, decodeData[domain.Student](t, env).ID)

	rec, _ = srv.do(http.MethodGet, "/api/v1/students/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = srv.do(http.MethodGet, "/api/v1/students/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = srv.do(http.MethodGet, "/api/v1/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]domain.Student](t, env), 1)
}

func TestLoanSchedule(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("UON/001")

	rec, env := srv.do(http.MethodGet, "/api/v1/loans/"+student.ID.String()+"/schedule", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, customError.ErrCodeLoanNotFound, env.Code)

	rec, _ = srv.do(http.MethodPost, "/api/v1/loans", map[string]any{
		"studentId":          student.ID,
		"totalAmount":        100000,
		"interestRate":       12,
		"repaymentStartDate": "2024-01-01T00:00:00Z",
		"monthlyRepayment":   3000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = srv.do(http.MethodGet, "/api/v1/loans/"+student.ID.String()+"/schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	schedule := decodeData[domain.ScheduleResponse](t, env)
	require.NotNil(t, schedule.RepaymentSchedule)
	assert.False(t, schedule.Incomplete)
	first := schedule.Entries[0]
	assert.Equal(t, 1, first.Month)
	assert.True(t, first.InterestPortion.Equal(decimal.NewFromInt(1000)))
	assert.True(t, first.PrincipalPortion.Equal(decimal.NewFromInt(2000)))
	assert.True(t, first.RemainingBalance.Equal(decimal.NewFromInt(98000)))
	assert.True(t, schedule.Last().RemainingBalance.IsZero())

	rec, env = srv.do(http.MethodGet, "/api/v1/loans/"+student.ID.String()+"/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeData[domain.LoanSummary](t, env)
	assert.Equal(t, len(schedule.Entries), summary.RemainingMonths)
}

func TestLoanScheduleNonAmortizing(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("UON/002")

	rec, _ := srv.do(http.MethodPost, "/api/v1/loans", map[string]any{
		"studentId":          student.ID,
		"totalAmount":        5000,
		"interestRate":       24,
		"repaymentStartDate": "2024-01-01T00:00:00Z",
		"monthlyRepayment":   90,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := srv.do(http.MethodGet, "/api/v1/loans/"+student.ID.String()+"/schedule", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, customError.ErrCodeNonAmortizingPayment, env.Code)
}

func TestLoanCalculator(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodPost, "/api/v1/loans/calculator", map[string]any{
		"principal":          12000,
		"interestRate":       0,
		"months":             12,
		"repaymentStartDate": "2024-01-31T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	calc := decodeData[domain.LoanCalculation](t, env)
	assert.True(t, calc.MonthlyPayment.Equal(decimal.NewFromInt(1000)))
	require.Len(t, calc.Entries, 12)
	assert.Equal(t, 29, calc.Entries[1].DueDate.Day())

	rec, env = srv.do(http.MethodPost, "/api/v1/loans/calculator", map[string]any{
		"principal":    12000,
		"interestRate": 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidLoanTerms, env.Code)

	rec, _ = srv.do(http.MethodPost, "/api/v1/loans/calculator", map[string]any{
		"principal":    0,
		"interestRate": 4,
		"months":       12,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(http.MethodPost, "/api/v1/loans/calculator", map[string]any{
		"principal":    1000,
		"interestRate": 101,
		"months":       12,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgetStatus(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("MU/001")

	for _, budget := range []map[string]any{
		{"studentId": student.ID, "category": "Food", "budgetAmount": 5000, "month": 3, "year": 2024},
		{"studentId": student.ID, "category": "transport", "budgetAmount": 2000, "month": 3, "year": 2024},
	} {
		rec, _ := srv.do(http.MethodPost, "/api/v1/budgets", budget)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	for _, tx := range []map[string]any{
		{"studentId": student.ID, "amount": 2000, "category": "food", "date": "2024-03-02T12:00:00Z"},
		{"studentId": student.ID, "amount": 1500, "category": "FOOD", "date": "2024-03-10T12:00:00Z"},
		{"studentId": student.ID, "amount": 700, "category": "food", "date": "2024-03-20T12:00:00Z"},
		{"studentId": student.ID, "amount": 1200, "category": "transport", "date": "2024-03-05T12:00:00Z"},
		{"studentId": student.ID, "amount": 2000, "category": "transport", "date": "2024-03-06T12:00:00Z"},
		{"studentId": student.ID, "amount": 999, "category": "food", "date": "2024-04-01T12:00:00Z"},
	} {
		rec, _ := srv.do(http.MethodPost, "/api/v1/transactions", tx)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := srv.do(http.MethodGet, "/api/v1/budgets/"+student.ID.String()+"/status/2024/3", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	statuses := decodeData[[]domain.BudgetStatus](t, env)
	require.Len(t, statuses, 2)
	assert.Equal(t, "food", statuses[0].Category)
	assert.Equal(t, domain.BudgetStateNearLimit, statuses[0].State)
	assert.True(t, statuses[0].PercentUsed.Decimal.Equal(decimal.NewFromInt(84)))
	assert.True(t, statuses[0].VarianceAmount.Equal(decimal.NewFromInt(-800)))
	assert.Equal(t, domain.BudgetStateOver, statuses[1].State)

	rec, env = srv.do(http.MethodGet, "/api/v1/budgets/"+student.ID.String()+"/month/2024/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, budget := range decodeData[[]domain.Budget](t, env) {
		assert.True(t, budget.SpentAmount.IsPositive(), "spent amount stored for %s", budget.Category)
	}

	rec, env = srv.do(http.MethodPost, "/api/v1/budgets/analyze/"+student.ID.String()+"?year=2024&month=3", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	analysis := decodeData[domain.BudgetAnalysis](t, env)
	assert.Len(t, analysis.Statuses, 2)
	assert.Empty(t, analysis.Advice)

	rec, _ = srv.do(http.MethodGet, "/api/v1/budgets/"+student.ID.String()+"/status/2024/13", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionAutoCategorized(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("JKUAT/001")

	rec, env := srv.do(http.MethodPost, "/api/v1/transactions", map[string]any{
		"studentId":   student.ID,
		"amount":      250,
		"description": "Lunch at the cafeteria",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tx := decodeData[domain.Transaction](t, env)
	assert.Equal(t, advisor.FallbackCategory, tx.Category)
	assert.True(t, tx.IsAutoCategorized)
}

func TestDisbursementCalculateFallback(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodPost, "/api/v1/disbursements/calculate", map[string]any{
		"course": "Law", "institution": "Strathmore", "region": "Nairobi", "year": 1, "semester": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	calc := decodeData[domain.DisbursementCalculation](t, env)
	assert.True(t, calc.Fallback)
	assert.True(t, calc.Total.Equal(decimal.NewFromInt(110500)))
}

func TestDisbursementStatusFlow(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("TUK/001")

	rec, env := srv.do(http.MethodPost, "/api/v1/disbursements", map[string]any{
		"studentId": student.ID, "type": "upkeep", "amount": 12500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	disbursement := decodeData[domain.Disbursement](t, env)

	path := "/api/v1/disbursements/" + disbursement.ID.String() + "/status"

	rec, env = srv.do(http.MethodPatch, path, map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidStatus, env.Code)

	rec, env = srv.do(http.MethodPatch, path, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotNil(t, decodeData[domain.Disbursement](t, env).ProcessedAt)

	rec, env = srv.do(http.MethodGet, "/api/v1/disbursements/recent?limit=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]domain.DisbursementWithStudent](t, env), 1)

	rec, _ = srv.do(http.MethodGet, "/api/v1/disbursements?studentId=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRepaymentsAndDashboard(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("KEMU/001")

	rec, env := srv.do(http.MethodPost, "/api/v1/loans", map[string]any{
		"studentId": student.ID, "totalAmount": 10000, "interestRate": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	loan := decodeData[domain.Loan](t, env)

	rec, env = srv.do(http.MethodPost, "/api/v1/repayments", map[string]any{
		"loanId": loan.ID, "amount": 4000, "paymentMethod": "manual", "dueDate": "2024-04-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	repayment := decodeData[domain.Repayment](t, env)

	rec, env = srv.do(http.MethodGet, "/api/v1/repayments/upcoming/all", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decodeData[[]domain.UpcomingRepayment](t, env), 1)

	statusPath := "/api/v1/repayments/" + repayment.ID.String() + "/status"
	rec, _ = srv.do(http.MethodPatch, statusPath, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	// a completed repayment cannot be reopened and re-applied to the balance
	rec, env = srv.do(http.MethodPatch, statusPath, map[string]any{"status": "failed"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, customError.ErrCodeInvalidStatus, env.Code)
	rec, _ = srv.do(http.MethodPatch, statusPath, map[string]any{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = srv.do(http.MethodGet, "/api/v1/loans/"+student.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeData[domain.Loan](t, env).OutstandingAmount.Equal(decimal.NewFromInt(6000)))

	rec, env = srv.do(http.MethodGet, "/api/v1/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decodeData[domain.DashboardStats](t, env)
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.True(t, stats.TotalActiveLoans.Equal(decimal.NewFromInt(6000)))
	assert.True(t, stats.RepaymentRatePercent.Equal(decimal.NewFromInt(100)))
}

func TestAdviceTip(t *testing.T) {
	srv := newTestServer(t)
	student := srv.createStudent("EGERTON/001")

	rec, env := srv.do(http.MethodPost, "/api/v1/ai-advice/generate-tip/"+student.ID.String(), nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tip := decodeData[domain.Advice](t, env)
	assert.Equal(t, advisor.FallbackTip, tip.Message)

	rec, env = srv.do(http.MethodPatch, "/api/v1/ai-advice/"+tip.ID.String()+"/read", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeData[domain.Advice](t, env).IsRead)

	rec, _ = srv.do(http.MethodPatch, "/api/v1/ai-advice/"+uuid.NewString()+"/read", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/loans", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "/api/v1/nowhere")

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{method: http.MethodDelete, path: "/api/v1/students", allow: "POST, GET"},
		{method: http.MethodDelete, path: "/api/v1/loans", allow: "POST, GET"},
		{method: http.MethodPut, path: "/api/v1/repayments/" + uuid.NewString() + "/status", allow: "PATCH"},
		{method: http.MethodPost, path: "/health", allow: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, env := srv.do(tt.method, tt.path, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
			assert.False(t, env.Success)
		})
	}

	// real routes still win over the fallbacks
	rec, _ = srv.do(http.MethodGet, "/api/v1/students", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
