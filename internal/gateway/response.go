package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// classify maps a contract failure to an HTTP status. The contract tags
// every failure with its error kind, and the tag survives the trip through
// the peer and gRPC inside the message text, so the gateway classifies by
// substring the way the chaincode client cannot by type.
func classify(err error) (int, string) {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"):
		return http.StatusConflict, "ALREADY_EXISTS"
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound, "NOT_FOUND"
	case strings.Contains(msg, "permission denied"):
		return http.StatusForbidden, "PERMISSION_DENIED"
	case strings.Contains(msg, "malformed input"):
		return http.StatusBadRequest, "MALFORMED_INPUT"
	default:
		return http.StatusBadGateway, "LEDGER_ERROR"
	}
}

func respondLedgerError(c *gin.Context, err error) {
	status, code := classify(err)
	respondError(c, status, code, err)
}
