package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"sort"

	"leadroll/internal/middleware"
	"leadroll/internal/models"
	"leadroll/internal/services"
	"leadroll/pkg/dates"
	"leadroll/pkg/logger"
	"leadroll/pkg/pagination"
	"leadroll/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RentRollHandler struct {
	service *services.RentRollService
}

func NewRentRollHandler(service *services.RentRollService) *RentRollHandler {
	return &RentRollHandler{service: service}
}

type CreateRentRollRequest struct {
	Address        *string  `json:"address"`
	Property       *string  `json:"property"`
	Unit           *string  `json:"unit"`
	Tenant         *string  `json:"tenant"`
	LeaseStart     *string  `json:"lease_start"`
	LeaseEnd       *string  `json:"lease_end"`
	Sqft           *string  `json:"sqft"`
	MonthlyPayment *string  `json:"monthly_payment"`
	InvalidColumns []string `json:"invalid_columns"`
}

// rentRollUpdateColumns maps updatable JSON keys to their database columns
var rentRollUpdateColumns = map[string]string{
	"address":         "address",
	"property":        "property",
	"unit":            "unit",
	"tenant":          "tenant",
	"lease_start":     "lease_start",
	"lease_end":       "lease_end",
	"sqft":            "sqft",
	"monthly_payment": "monthly_payment",
	"invalid_columns": "invalid_columns",
}

// List returns all of the caller's rent-roll records ordered by id
func (h *RentRollHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	if wantsPage(c) {
		params := pagination.ParsePageParams(c)
		records, total, err := h.service.GetPageByUser(userID, params)
		if err != nil {
			logger.GetLogger().Errorf("Error getting rent roll data: %v", err)
			response.ServerError(c, "Error getting rent roll data")
			return
		}
		response.SuccessWithPage(c, records, pagination.NewPageInfo(params.Page, params.PageSize, total))
		return
	}

	records, err := h.service.GetByUser(userID)
	if err != nil {
		logger.GetLogger().Errorf("Error getting rent roll data: %v", err)
		response.ServerError(c, "Error getting rent roll data")
		return
	}
	response.Success(c, records)
}

// Create accepts either a single record object or a non-empty array of raw
// import rows. The array path runs column-mapping inference followed by
// per-row normalization.
func (h *RentRollHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if isJSONArray(raw) {
		var rows []map[string]any
		if err := json.Unmarshal(raw, &rows); err != nil {
			response.BadRequest(c, "Invalid import payload")
			return
		}
		if len(rows) == 0 {
			response.BadRequest(c, "No CSV data provided")
			return
		}

		h.importRows(c, userID, rowHeaders(rows[0]), rows)
		return
	}

	var req CreateRentRollRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.Property == nil || *req.Property == "" {
		response.BadRequest(c, "Property is required")
		return
	}

	record := models.RentRollRecord{
		UserID:         userID,
		Address:        req.Address,
		Property:       req.Property,
		Unit:           req.Unit,
		Tenant:         req.Tenant,
		LeaseStart:     req.LeaseStart,
		LeaseEnd:       req.LeaseEnd,
		Sqft:           req.Sqft,
		MonthlyPayment: req.MonthlyPayment,
		InvalidColumns: datatypes.JSONSlice[string](req.InvalidColumns),
	}
	if err := h.service.Create(&record); err != nil {
		logger.GetLogger().Errorf("Error creating rent roll data: %v", err)
		response.BadRequest(c, "Error creating rent roll data")
		return
	}
	response.SuccessWithMessage(c, "Rent roll data created", record)
}

// ImportCSV accepts a CSV file upload and feeds it through the same
// mapping and normalization pipeline as the JSON array path
func (h *RentRollHandler) ImportCSV(c *gin.Context) {
	userID := middleware.UserID(c)

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing CSV file")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	headers, err := reader.Read()
	if err != nil {
		response.BadRequest(c, "Empty CSV file")
		return
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			response.BadRequest(c, "Malformed CSV file")
			return
		}
		row := make(map[string]any, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		response.BadRequest(c, "No CSV data provided")
		return
	}

	h.importRows(c, userID, headers, rows)
}

func (h *RentRollHandler) importRows(c *gin.Context, userID uint, headers []string, rows []map[string]any) {
	inserted, err := h.service.ImportRows(c.Request.Context(), userID, headers, rows)
	if err != nil {
		if errors.Is(err, services.ErrMappingFailed) {
			logger.GetLogger().Errorf("Rent roll import mapping failed: %v", err)
			response.ServerError(c, "Incorrect mapping supplied by model")
			return
		}
		logger.GetLogger().Errorf("Rent roll bulk insert failed: %v", err)
		response.BadRequest(c, "Bulk insert failed")
		return
	}
	response.SuccessWithMessage(c, "Import successful", gin.H{"inserted": inserted})
}

// Occupancy reports the occupied/vacant split of the caller's units within
// a reporting window
func (h *RentRollHandler) Occupancy(c *gin.Context) {
	userID := middleware.UserID(c)

	start, ok := dates.ParseCanonical(c.Query("start"))
	if !ok {
		response.BadRequest(c, "Invalid start date")
		return
	}
	end, ok := dates.ParseCanonical(c.Query("end"))
	if !ok {
		response.BadRequest(c, "Invalid end date")
		return
	}

	records, err := h.service.GetByUser(userID)
	if err != nil {
		logger.GetLogger().Errorf("Error getting rent roll data: %v", err)
		response.ServerError(c, "Error getting rent roll data")
		return
	}

	response.Success(c, services.CalculateOccupancy(records, start, end))
}

// Update modifies the caller's record identified by the id in the body.
// invalid_columns is writable but never re-derived here.
func (h *RentRollHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)

	id, updates, ok := bindUpdate(c, rentRollUpdateColumns)
	if !ok {
		return
	}

	if v, present := updates["invalid_columns"]; present {
		columns, err := toStringSlice(v)
		if err != nil {
			response.BadRequest(c, "invalid_columns must be an array of field names")
			return
		}
		updates["invalid_columns"] = datatypes.JSONSlice[string](columns)
	}

	if err := h.service.Update(userID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "Rent roll record not found")
			return
		}
		logger.GetLogger().Errorf("Error updating rent roll data %d: %v", id, err)
		response.BadRequest(c, "Error updating rent roll data")
		return
	}
	response.SuccessWithMessage(c, "updated", nil)
}

// Delete removes the caller's record identified by the id in the body
func (h *RentRollHandler) Delete(c *gin.Context) {
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
			response.NotFound(c, "Rent roll record not found")
			return
		}
		logger.GetLogger().Errorf("Error deleting rent roll data %d: %v", req.ID, err)
		response.BadRequest(c, "Error deleting rent roll data")
		return
	}
	response.SuccessWithMessage(c, "deleted", nil)
}

// rowHeaders lists the keys of a JSON import row in stable order
func rowHeaders(row map[string]any) []string {
	headers := make([]string, 0, len(row))
	for key := range row {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	return headers
}

func toStringSlice(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.New("not an array")
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("not a string element")
		}
		result = append(result, s)
	}
	return result, nil
}
