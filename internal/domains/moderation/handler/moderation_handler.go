package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/domains/moderation/model"
	"diary-backend/internal/domains/moderation/service"
	"diary-backend/internal/shared/middleware"
	"diary-backend/internal/shared/response"
)

type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// FlagStory handles POST /stories/:id/flags
func (h *ModerationHandler) FlagStory(c *gin.Context) {
	h.flag(c, true)
}

// FlagEntry handles POST /entries/:id/flags
func (h *ModerationHandler) FlagEntry(c *gin.Context) {
	h.flag(c, false)
}

// VoteStory handles POST /stories/:id/votes
func (h *ModerationHandler) VoteStory(c *gin.Context) {
	h.vote(c, true)
}

// VoteEntry handles POST /entries/:id/votes
func (h *ModerationHandler) VoteEntry(c *gin.Context) {
	h.vote(c, false)
}

// StoryVotes handles GET /stories/:id/votes
func (h *ModerationHandler) StoryVotes(c *gin.Context) {
	h.summary(c, true)
}

// EntryVotes handles GET /entries/:id/votes
func (h *ModerationHandler) EntryVotes(c *gin.Context) {
	h.summary(c, false)
}

func (h *ModerationHandler) flag(c *gin.Context, story bool) {
	ref, ok := contentRef(c, story)
	if !ok {
		return
	}

	var req model.CreateFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	flag, err := h.moderationService.Flag(c.Request.Context(), middleware.OptionalUserID(c), ref, req.Reason)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Flag recorded", flag)
}

func (h *ModerationHandler) vote(c *gin.Context, story bool) {
	ref, ok := contentRef(c, story)
	if !ok {
		return
	}

	var req model.CreateVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	vote, err := h.moderationService.Vote(c.Request.Context(), middleware.OptionalUserID(c), ref, req.Direction)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, "Vote recorded", vote)
}

func (h *ModerationHandler) summary(c *gin.Context, story bool) {
	ref, ok := contentRef(c, story)
	if !ok {
		return
	}

	summary, err := h.moderationService.Summary(c.Request.Context(), ref)
	if err != nil {
		response.ErrorResponse(c, model.ToHTTPStatus(err), model.ToErrorCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Votes retrieved", summary)
}

func contentRef(c *gin.Context, story bool) (model.ContentRef, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid content id")
		return model.ContentRef{}, false
	}
	if story {
		return model.ContentRef{StoryID: &id}, true
	}
	return model.ContentRef{EntryID: &id}, true
}
