package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/domains/story/model"
	"diary-backend/internal/domains/story/service"
	"diary-backend/internal/shared/middleware"
	"diary-backend/internal/shared/response"
)

type StoryHandler struct {
	storyService service.StoryService
}

func NewStoryHandler(storyService service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Create handles POST /stories
func (h *StoryHandler) Create(c *gin.Context) {
	var req model.CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := h.storyService.Create(c.Request.Context(), middleware.MustUserID(c), &req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Story created", detail)
}

// Update handles PUT /stories/:id
func (h *StoryHandler) Update(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid story id")
		return
	}

	var req model.UpdateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := h.storyService.Update(c.Request.Context(), middleware.MustUserID(c), storyID, &req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Story updated", detail)
}

// Publish handles POST /stories/:id/publish
func (h *StoryHandler) Publish(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid story id")
		return
	}

	var req model.PublishStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	detail, err := h.storyService.Publish(c.Request.Context(), middleware.MustUserID(c), storyID, &req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Story published", detail)
}

// Read handles GET /stories/:id
func (h *StoryHandler) Read(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid story id")
		return
	}

	detail, err := h.storyService.Read(c.Request.Context(), middleware.OptionalUserID(c), storyID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Story retrieved", detail)
}

// Recent handles GET /stories
func (h *StoryHandler) Recent(c *gin.Context) {
	filter := model.StoryFilter{Limit: 20}
	if v := c.Query("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid author id")
			return
		}
		filter.AuthorID = &id
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	stories, err := h.storyService.Recent(c.Request.Context(), filter)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Stories retrieved", stories)
}

// Inspired handles GET /stories/:id/inspired
func (h *StoryHandler) Inspired(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid story id")
		return
	}

	stories, err := h.storyService.Inspired(c.Request.Context(), storyID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Inspired stories retrieved", stories)
}

// NewForm handles GET /stories/new
func (h *StoryHandler) NewForm(c *gin.Context) {
	params, ok := formParams(c)
	if !ok {
		return
	}
	form, err := h.storyService.NewForm(c.Request.Context(), middleware.MustUserID(c), params)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Story form", form)
}

// EditForm handles GET /stories/:id/edit
func (h *StoryHandler) EditForm(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid story id")
		return
	}
	params, ok := formParams(c)
	if !ok {
		return
	}

	form, err := h.storyService.EditForm(c.Request.Context(), middleware.MustUserID(c), storyID, params)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Story form", form)
}

// formParams reads the optional relation hints from the query string.
// Malformed ids are reported; missing ones are simply absent.
func formParams(c *gin.Context) (service.FormParams, bool) {
	var params service.FormParams
	if v := c.Query("inspired_by"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid inspired_by id")
			return params, false
		}
		params.InspiredByID = &id
	}
	if v := c.Query("preceded_by"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid preceded_by id")
			return params, false
		}
		params.PrecededByID = &id
	}
	return params, true
}
