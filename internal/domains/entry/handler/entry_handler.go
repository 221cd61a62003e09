package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/domains/entry/model"
	"diary-backend/internal/domains/entry/service"
	"diary-backend/internal/shared/middleware"
	"diary-backend/internal/shared/response"
)

type EntryHandler struct {
	entryService service.EntryService
}

func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// Create handles POST /entries
func (h *EntryHandler) Create(c *gin.Context) {
	var req model.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := h.entryService.Create(c.Request.Context(), middleware.MustUserID(c), &req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Entry created", detail)
}

// Update handles PUT /entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	var req model.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := h.entryService.Update(c.Request.Context(), middleware.MustUserID(c), entryID, &req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Entry updated", detail)
}

// Read handles GET /entries/:id
func (h *EntryHandler) Read(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid entry id")
		return
	}

	detail, err := h.entryService.Read(c.Request.Context(), middleware.OptionalUserID(c), entryID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Entry retrieved", detail)
}

// Recent handles GET /entries
func (h *EntryHandler) Recent(c *gin.Context) {
	var authorID *uuid.UUID
	if v := c.Query("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid author id")
			return
		}
		authorID = &id
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	entries, err := h.entryService.Recent(c.Request.Context(), authorID, limit, offset)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Entries retrieved", entries)
}
