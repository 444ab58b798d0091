package handler

import (
	"net/http"

	"github.com/segyhp/helbflow/internal/logger"
	"github.com/segyhp/helbflow/internal/service"
	"github.com/segyhp/helbflow/pkg/response"
)

type DashboardHandler struct {
	base
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{base: newBase(log), service: service}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w, stats)
}
