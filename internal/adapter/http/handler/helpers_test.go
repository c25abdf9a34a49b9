package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBindContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindPredictRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantText   string
		wantOK     bool
		wantStatus int
	}{
		{name: "text kept verbatim", body: `{"text":"  Hello  "}`, wantText: "  Hello  ", wantOK: true},
		{name: "empty text is passed on", body: `{"text":""}`, wantText: "", wantOK: true},
		{name: "missing text", body: `{}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "null text", body: `{"text":null}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "wrong type", body: `{"text":42}`, wantStatus: http.StatusBadRequest},
		{name: "empty body", body: ``, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBindContext(tt.body)

			text, ok := bindPredictRequest(c)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantText, text)
				return
			}
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBindBatchRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantTexts  []string
		wantOK     bool
		wantStatus int
	}{
		{name: "keeps order", body: `[{"text":"b"},{"text":"a"},{"text":"b"}]`, wantTexts: []string{"b", "a", "b"}, wantOK: true},
		{name: "empty array", body: `[]`, wantTexts: []string{}, wantOK: true},
		{name: "missing text", body: `[{"text":"a"},{"body":"b"}]`, wantStatus: http.StatusUnprocessableEntity},
		{name: "not an array", body: `{"text":"a"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newBindContext(tt.body)

			texts, ok := bindBatchRequest(c)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantTexts, texts)
				return
			}
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
