// internal/api/response.go
// The {success, data, error} command-result envelope (spec.md §6) and the
// ERR_<KIND>: prefix mapping from service sentinel errors (spec.md §7).

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tournament-planner/internal/services"
)

// Envelope is the stable wire contract every command returns.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Ok writes a successful envelope.
func Ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// errKind maps a sentinel error to its ERR_<KIND> prefix and HTTP status.
func errKind(err error) (prefix string, status int) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "ERR_NOT_FOUND", http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return "ERR_UNAUTHORIZED", http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return "ERR_FORBIDDEN", http.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		return "ERR_INVALID_INPUT", http.StatusBadRequest
	case errors.Is(err, services.ErrEmailAlreadyExists):
		return "ERR_CONFLICT", http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return "ERR_UNAUTHORIZED", http.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidToken):
		return "ERR_UNAUTHORIZED", http.StatusUnauthorized
	case errors.Is(err, services.ErrNoSaveLoaded):
		return "ERR_NO_SAVE_LOADED", http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadyInitialized):
		return "ERR_ALREADY_INITIALIZED", http.StatusConflict
	case errors.Is(err, services.ErrInvalidPhaseTransition):
		return "ERR_PHASE", http.StatusConflict
	case errors.Is(err, services.ErrPreconditionFailed):
		return "ERR_PRECONDITION", http.StatusPreconditionFailed
	case errors.Is(err, services.ErrConflict):
		return "ERR_CONFLICT", http.StatusConflict
	case errors.Is(err, services.ErrExternalService):
		return "ERR_EXTERNAL", http.StatusBadGateway
	default:
		return "ERR_INTERNAL", http.StatusInternalServerError
	}
}

// Fail writes a failed envelope, deriving the HTTP status and ERR_<KIND>
// prefix from the error's sentinel (falling through to ERR_INTERNAL for
// anything the kernel didn't tag, per spec.md §7's Internal/Propagation
// rule).
func Fail(c *gin.Context, err error) {
	prefix, status := errKind(err)
	c.JSON(status, Envelope{Success: false, Error: prefix + ": " + err.Error()})
}

// FailWith writes a failed envelope with an explicit prefix/status, for
// request-shape errors (bad JSON, bad path param) that never reach a
// service.
func FailWith(c *gin.Context, status int, prefix, detail string) {
	c.JSON(status, Envelope{Success: false, Error: prefix + ": " + detail})
}
