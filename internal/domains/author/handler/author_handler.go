package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/domains/author/model"
	"diary-backend/internal/domains/author/service"
	storyservice "diary-backend/internal/domains/story/service"
	"diary-backend/internal/shared/middleware"
	"diary-backend/internal/shared/response"
)

type AuthorHandler struct {
	authorService service.Service
	storyService  storyservice.StoryService
}

func NewAuthorHandler(authorService service.Service, storyService storyservice.StoryService) *AuthorHandler {
	return &AuthorHandler{authorService: authorService, storyService: storyService}
}

// Create handles POST /authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	author, err := h.authorService.Create(c.Request.Context(), middleware.MustUserID(c), req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Pseudonym created", author)
}

// Update handles PUT /authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	author, err := h.authorService.Update(c.Request.Context(), middleware.MustUserID(c), authorID, req)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Pseudonym updated", author)
}

// GetByID handles GET /authors/:id. The public profile carries the
// author's published stories alongside the rendered bio.
func (h *AuthorHandler) GetByID(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	author, err := h.authorService.GetByID(c.Request.Context(), authorID)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	stories, err := h.storyService.ByAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.InternalServerError(c, "Failed to load stories")
		return
	}

	response.Success(c, http.StatusOK, "Author retrieved", gin.H{
		"author":  author,
		"stories": stories,
	})
}

// Mine handles GET /authors/mine, listing the signed-in user's pseudonyms
// ordered by name.
func (h *AuthorHandler) Mine(c *gin.Context) {
	authors, err := h.authorService.ForUser(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Pseudonyms retrieved", authors)
}

// NewForm handles GET /authors/new, the target of the pseudonym-required
// redirect. It echoes the next parameter so a client can resume where the
// redirect interrupted it.
func (h *AuthorHandler) NewForm(c *gin.Context) {
	response.Success(c, http.StatusOK, "A pseudonym is required before writing", gin.H{
		"next": c.Query("next"),
		"fields": []gin.H{
			{"name": "name", "type": "text", "required": true, "max_length": model.MaxNameLength},
			{"name": "bio_text", "type": "textarea", "required": false},
			{"name": "avatar", "type": "url", "required": false},
		},
	})
}
