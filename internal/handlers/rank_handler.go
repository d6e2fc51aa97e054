package handlers

import (
	"errors"

	"leadroll/internal/middleware"
	"leadroll/internal/models"
	"leadroll/internal/services"
	"leadroll/pkg/logger"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
)

type RankHandler struct {
	ranker *services.LeadRankerService
}

func NewRankHandler(ranker *services.LeadRankerService) *RankHandler {
	return &RankHandler{ranker: ranker}
}

// Rank orders the posted leads by seniority and persists their ranks.
// "success" means at least the model returned a ranking; "warning" means it
// answered but could not order any lead.
func (h *RankHandler) Rank(c *gin.Context) {
	userID := middleware.UserID(c)

	var leads []models.Lead
	if err := c.ShouldBindJSON(&leads); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if len(leads) == 0 {
		response.BadRequest(c, "No request body")
		return
	}

	outcome, err := h.ranker.RankLeads(c.Request.Context(), userID, leads)
	if err != nil {
		if errors.Is(err, services.ErrNoBracket) {
			response.BadRequest(c, "No lead with employee count")
			return
		}
		logger.GetLogger().Errorf("Error ranking leads: %v", err)
		response.ServerError(c, "Error ranking leads")
		return
	}

	switch outcome {
	case services.OutcomeNoRankable:
		response.SuccessWithMessage(c, "warning", nil)
	default:
		response.SuccessWithMessage(c, "success", nil)
	}
}
