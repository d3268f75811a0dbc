package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type statsCollector interface {
	Collect(ctx context.Context, now time.Time) (infraRepo.Stats, error)
}

type StatsHandler struct {
	stats       statsCollector
	tz          string
	showDetails bool
}

func NewStatsHandler(stats statsCollector, tz string, showDetails bool) *StatsHandler {
	return &StatsHandler{stats: stats, tz: tz, showDetails: showDetails}
}

func (h *StatsHandler) Get(c *gin.Context) {
	s, err := h.stats.Collect(c.Request.Context(), timezone.NowIn(h.tz))
	if err != nil {
		httperr.Handle(c, err, h.showDetails)
		return
	}
	httpresp.OK(c, s)
}
