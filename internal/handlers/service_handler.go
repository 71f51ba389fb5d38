package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/httperr"
	"github.com/bienestar-studio/studio-scheduler/internal/httpresp"
)

type ServiceHandler struct {
	repo domain.Repository
}

func NewServiceHandler(repo domain.Repository) *ServiceHandler {
	return &ServiceHandler{repo: repo}
}

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load the service catalog.")
		return
	}
	httpresp.List(c, services)
}
