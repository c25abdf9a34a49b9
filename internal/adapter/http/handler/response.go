package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key the RequestID middleware writes to
const RequestIDKey = "request_id"

// Response is the envelope of every prediction endpoint. Exactly one of
// Data and Error is set.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo is the categorized failure shown to clients
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo carries per-response bookkeeping
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// newMeta stamps the response. Requests that bypassed the RequestID
// middleware still get an ID so clients can report it.
func newMeta(c *gin.Context) *MetaInfo {
	requestID := c.GetString(RequestIDKey)
	if requestID == "" {
		requestID = uuid.New().String()
		c.Set(RequestIDKey, requestID)
	}
	return &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c),
	})
}

// respondError aborts the handler chain with an error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
		Meta:    newMeta(c),
	})
}
