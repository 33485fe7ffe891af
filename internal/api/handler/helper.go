// Package handler provides the HTTP handlers for the site pages, the skill
// value endpoint and the JSON API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skilltreedocs/skilltreedocs/internal/skilltree"
	"github.com/skilltreedocs/skilltreedocs/pkg/errors"
)

// SessionParam is the query parameter carrying a user's session token.
const SessionParam = "u"

const htmlContentType = "text/html; charset=utf-8"

// respondError writes an AppError as JSON. Other errors are reported as 500
// and attached to the context for the error log.
func respondError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"code":    errors.ErrCodeInternal,
			"message": "Internal server error",
		})
		return
	}
	if appErr.HTTPStatus() >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func renderHTML(c *gin.Context, body string) {
	c.Data(http.StatusOK, htmlContentType, []byte(body))
}

// lookupSkillID accepts either a stored identifier or any spelling that
// normalizes to one.
func lookupSkillID(raw string, has func(string) bool) (string, bool) {
	if has(raw) {
		return raw, true
	}
	id := skilltree.Normalize(raw)
	return id, id != "" && has(id)
}
