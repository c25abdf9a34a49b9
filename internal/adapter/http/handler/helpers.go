package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// PredictRequest is the body of a single prediction and one element of a
// batch body. Text is a pointer so a missing field can be told apart from "".
type PredictRequest struct {
	Text *string `json:"text"`
}

// bindPredictRequest decodes a single prediction body. On failure it writes
// the error response and returns false.
func bindPredictRequest(c *gin.Context) (string, bool) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleInvalidRequest(c, "invalid request body: "+err.Error())
		return "", false
	}
	if req.Text == nil {
		HandleValidationError(c, "text is required")
		return "", false
	}
	return *req.Text, true
}

// bindBatchRequest decodes a batch body, a JSON array of PredictRequest.
// On failure it writes the error response and returns false.
func bindBatchRequest(c *gin.Context) ([]string, bool) {
	var reqs []PredictRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		HandleInvalidRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}

	if _, idx, missing := lo.FindIndexOf(reqs, func(r PredictRequest) bool { return r.Text == nil }); missing {
		HandleValidationError(c, fmt.Sprintf("message %d: text is required", idx))
		return nil, false
	}

	return lo.Map(reqs, func(r PredictRequest, _ int) string { return *r.Text }), true
}
