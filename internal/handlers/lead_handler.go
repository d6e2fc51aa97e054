package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"leadroll/internal/middleware"
	"leadroll/internal/models"
	"leadroll/internal/services"
	"leadroll/pkg/logger"
	"leadroll/pkg/pagination"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeadHandler struct {
	service *services.LeadService
}

func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

type CreateLeadRequest struct {
	Organization *string `json:"organization"`
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Title        *string `json:"title"`
	Employees    *string `json:"employees"`
	Rank         *int    `json:"rank"`
}

// leadUpdateColumns maps updatable JSON keys to their database columns
var leadUpdateColumns = map[string]string{
	"organization": "organization",
	"firstName":    "first_name",
	"lastName":     "last_name",
	"title":        "title",
	"employees":    "employees",
	"rank":         "rank",
}

// List returns the caller's leads ordered by id. Supplying page or
// page_size switches to a paginated response; the default is the full list.
func (h *LeadHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	if wantsPage(c) {
		params := pagination.ParsePageParams(c)
		leads, total, err := h.service.GetPageByUser(userID, params)
		if err != nil {
			logger.GetLogger().Errorf("Error getting leads: %v", err)
			response.ServerError(c, "Error getting leads")
			return
		}
		response.SuccessWithPage(c, leads, pagination.NewPageInfo(params.Page, params.PageSize, total))
		return
	}

	leads, err := h.service.GetByUser(userID)
	if err != nil {
		logger.GetLogger().Errorf("Error getting leads: %v", err)
		response.ServerError(c, "Error getting leads")
		return
	}
	response.Success(c, leads)
}

// Create accepts either a single lead object or a non-empty array of CSV
// import rows using the fixed lead import header convention
func (h *LeadHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if isJSONArray(raw) {
		var rows []services.LeadCSVRow
		if err := json.Unmarshal(raw, &rows); err != nil {
			response.BadRequest(c, "Invalid import payload")
			return
		}
		if len(rows) == 0 {
			response.BadRequest(c, "No CSV data provided")
			return
		}

		inserted, err := h.service.BulkImport(userID, rows)
		if err != nil {
			logger.GetLogger().Errorf("Lead bulk insert failed: %v", err)
			response.BadRequest(c, "Bulk insert failed")
			return
		}
		response.SuccessWithMessage(c, "Import successful", gin.H{"inserted": inserted})
		return
	}

	var req CreateLeadRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Employees != nil && *req.Employees != "" && !models.IsValidBracket(*req.Employees) {
		response.BadRequest(c, "Unknown employee range")
		return
	}

	lead := models.Lead{
		UserID:       userID,
		Organization: req.Organization,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Title:        req.Title,
		Employees:    req.Employees,
		Rank:         req.Rank,
	}
	if err := h.service.Create(&lead); err != nil {
		logger.GetLogger().Errorf("Error creating lead: %v", err)
		response.BadRequest(c, "Error creating lead")
		return
	}
	response.SuccessWithMessage(c, "Lead created", lead)
}

// Update modifies the caller's lead identified by the id in the body
func (h *LeadHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	id, updates, ok := bindUpdate(c, leadUpdateColumns)
	if !ok {
		return
	}

	if v, present := updates["employees"]; present {
		if s, isString := v.(string); isString && s != "" && !models.IsValidBracket(s) {
			response.BadRequest(c, "Unknown employee range")
			return
		}
	}

	if err := h.service.Update(userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		logger.GetLogger().Errorf("Error updating lead %d: %v", id, err)
		response.BadRequest(c, "Error updating lead")
		return
	}
	response.SuccessWithMessage(c, "updated", nil)
}

// Delete removes the caller's lead identified by the id in the body
func (h *LeadHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing item ID")
		return
	}

	if err := h.service.Delete(userID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Lead not found")
			return
		}
		logger.GetLogger().Errorf("Error deleting lead %d: %v", req.ID, err)
		response.BadRequest(c, "Error deleting lead")
		return
	}
	response.SuccessWithMessage(c, "deleted", nil)
}

// wantsPage reports whether the request asked for a paginated listing
func wantsPage(c *gin.Context) bool {
	if _, ok := c.GetQuery("page"); ok {
		return true
	}
	_, ok := c.GetQuery("page_size")
	return ok
}

// isJSONArray reports whether the body's first token opens an array,
// selecting the bulk import path
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// bindUpdate reads an {id, ...fields} body and keeps only the updatable
// columns, translated to their database names
func bindUpdate(c *gin.Context, allowed map[string]string) (uint, map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Invalid request body")
		return 0, nil, false
	}

	rawID, present := body["id"]
	idNum, isNum := rawID.(float64)
	if !present || !isNum || idNum <= 0 {
		response.BadRequest(c, "Missing item ID")
		return 0, nil, false
	}

	updates := make(map[string]interface{})
	for key, value := range body {
		if column, ok := allowed[key]; ok {
			updates[column] = value
		}
	}
	if len(updates) == 0 {
		response.BadRequest(c, "No updatable fields supplied")
		return 0, nil, false
	}

	return uint(idNum), updates, true
}
