package common

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// API error messages returned to clients. Store failures never leak details.
const (
	MsgTitleRequired  = "Note title is required"
	MsgTextRequired   = "Note text is required"
	MsgQueryRequired  = "Search query is required"
	MsgInvalidJSON    = "Invalid JSON"
	MsgNoteNotFound   = "Note not found"
	MsgFetchNotes     = "Failed to fetch notes"
	MsgFetchNote      = "Failed to fetch note"
	MsgSearchNotes    = "Failed to search notes"
	MsgCreateNote     = "Failed to create note"
	MsgUpdateNote     = "Failed to update note"
	MsgDeleteNote     = "Failed to delete note"
	MsgRouteNotFound  = "Not found"
	MsgRouteNotExists = "The requested API route does not exist"
)

// APIPrefix is the path namespace served by the notes API
const APIPrefix = "/api/"

// ErrorBody is the JSON shape of every API error
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a generic error body and aborts the chain
func ErrorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// ValidationMessage maps a validation error to its client-facing message
func ValidationMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoteTitleRequired):
		return MsgTitleRequired
	case errors.Is(err, ErrNoteTextRequired):
		return MsgTextRequired
	case errors.Is(err, ErrSearchQueryRequired):
		return MsgQueryRequired
	default:
		return MsgInvalidJSON
	}
}

// NoRoute answers unmatched paths: JSON under the API namespace, plain text elsewhere
func NoRoute(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, APIPrefix) {
		c.JSON(http.StatusNotFound, ErrorBody{
			Error:   MsgRouteNotFound,
			Message: MsgRouteNotExists,
		})
		return
	}
	c.String(http.StatusNotFound, "Not Found")
}
