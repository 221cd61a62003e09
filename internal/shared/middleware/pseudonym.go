package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"diary-backend/internal/shared/response"
)

// PseudonymCounter reports how many pseudonyms a user owns. Satisfied by the
// author service.
type PseudonymCounter interface {
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// pseudonymExplainerPath is where users without a pen name are sent before
// they can write anything.
const pseudonymExplainerPath = "/api/v1/authors/new"

// RequirePseudonym redirects authenticated users who have not created a
// pseudonym yet to the pseudonym-creation explainer, preserving the original
// destination in the next parameter. Runs after AuthMiddleware.
func RequirePseudonym(counter PseudonymCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		count, err := counter.CountForUser(c.Request.Context(), userID)
		if err != nil {
			response.InternalServerError(c, "failed to look up pseudonyms")
			c.Abort()
			return
		}

		if count == 0 {
			next := c.Request.URL.RequestURI()
			c.Redirect(http.StatusSeeOther,
				pseudonymExplainerPath+"?next="+url.QueryEscape(next))
			c.Abort()
			return
		}

		c.Next()
	}
}
