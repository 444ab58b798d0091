package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/pkg/response"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Health        *HealthHandler
	Dashboard     *DashboardHandler
	Students      *StudentHandler
	Disbursements *DisbursementHandler
	Transactions  *TransactionHandler
	Budgets       *BudgetHandler
	Loans         *LoanHandler
	Advice        *AdviceHandler
}

// NewRouter mounts the API under /api/v1 and the health checks at the root.
// CORS wraps the router so preflight requests never reach method matching.
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = response.NotFoundHandler()

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/dashboard/stats", h.Dashboard.Stats).Methods(http.MethodGet)

	api.HandleFunc("/students", h.Students.Create).Methods(http.MethodPost)
	api.HandleFunc("/students", h.Students.List).Methods(http.MethodGet)
	api.HandleFunc("/students/by-student-id/{studentId}", h.Students.GetByStudentNumber).Methods(http.MethodGet)
	api.HandleFunc("/students/{id}", h.Students.Get).Methods(http.MethodGet)

	api.HandleFunc("/disbursements/calculate", h.Disbursements.Calculate).Methods(http.MethodPost)
	api.HandleFunc("/disbursements/recent", h.Disbursements.Recent).Methods(http.MethodGet)
	api.HandleFunc("/disbursements", h.Disbursements.Create).Methods(http.MethodPost)
	api.HandleFunc("/disbursements", h.Disbursements.List).Methods(http.MethodGet)
	api.HandleFunc("/disbursements/{id}/status", h.Disbursements.UpdateStatus).Methods(http.MethodPatch)

	api.HandleFunc("/transactions", h.Transactions.Create).Methods(http.MethodPost)
	api.HandleFunc("/transactions/{studentId}", h.Transactions.List).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{studentId}/month/{year}/{month}", h.Transactions.ListForMonth).Methods(http.MethodGet)

	api.HandleFunc("/budgets", h.Budgets.Create).Methods(http.MethodPost)
	api.HandleFunc("/budgets/analyze/{studentId}", h.Budgets.Analyze).Methods(http.MethodPost)
	api.HandleFunc("/budgets/{studentId}", h.Budgets.List).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{studentId}/month/{year}/{month}", h.Budgets.ListForMonth).Methods(http.MethodGet)
	api.HandleFunc("/budgets/{studentId}/status/{year}/{month}", h.Budgets.Status).Methods(http.MethodGet)

	api.HandleFunc("/loans/calculator", h.Loans.Calculate).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.Loans.Create).Methods(http.MethodPost)
	api.HandleFunc("/loans", h.Loans.ListActive).Methods(http.MethodGet)
	api.HandleFunc("/loans/{studentId}", h.Loans.Get).Methods(http.MethodGet)
	api.HandleFunc("/loans/{studentId}/schedule", h.Loans.Schedule).Methods(http.MethodGet)
	api.HandleFunc("/loans/{studentId}/summary", h.Loans.Summary).Methods(http.MethodGet)

	api.HandleFunc("/repayments/upcoming/all", h.Loans.Upcoming).Methods(http.MethodGet)
	api.HandleFunc("/repayments", h.Loans.CreateRepayment).Methods(http.MethodPost)
	api.HandleFunc("/repayments/{loanId}", h.Loans.ListRepayments).Methods(http.MethodGet)
	api.HandleFunc("/repayments/{id}/status", h.Loans.UpdateRepaymentStatus).Methods(http.MethodPatch)

	api.HandleFunc("/ai-advice/generate-tip/{studentId}", h.Advice.GenerateTip).Methods(http.MethodPost)
	api.HandleFunc("/ai-advice/{studentId}", h.Advice.List).Methods(http.MethodGet)
	api.HandleFunc("/ai-advice/{id}/read", h.Advice.MarkRead).Methods(http.MethodPatch)

	methodFallbacks(router)

	logging := response.LoggingMiddleware(log.WithComponent(logger.ComponentHTTP).Logger)
	return response.CORSMiddleware(logging(router))
}

// methodFallbacks registers, after every real route, a method-less route per path that
// answers 405. mux alone loses the method mismatch once a later subrouter route misses on path.
func methodFallbacks(router *mux.Router) {
	var paths []string
	allowed := make(map[string][]string)

	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		if _, seen := allowed[path]; !seen {
			paths = append(paths, path)
		}
		allowed[path] = append(allowed[path], methods...)
		return nil
	})

	for _, path := range paths {
		router.Handle(path, response.MethodNotAllowedHandler(allowed[path]))
	}
}
