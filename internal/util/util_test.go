package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam_hub_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

func TestValidateMimeTypeKeepsContent(t *testing.T) {
	mimeType, r, err := ValidateMimeType(bytes.NewReader(pdfBytes), []string{MimePDF})
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mimeType)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, rest)
}

func TestValidateMimeTypeRejects(t *testing.T) {
	_, _, err := ValidateMimeType(bytes.NewReader([]byte("plain words")), []string{MimePDF})
	assert.ErrorIs(t, err, ErrUnsupportedFileType)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestMimeAllowed(t *testing.T) {
	assert.True(t, MimeAllowed("image/png", []string{"image/"}))
	assert.True(t, MimeAllowed("text/plain; charset=utf-8", []string{"text/plain"}))
	assert.False(t, MimeAllowed("application/pdfx", []string{MimePDF}))
	assert.False(t, MimeAllowed("video/mp4", nil))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, model.Student, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestHandleErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{ErrExamNotFound, http.StatusNotFound},
		{ErrNotExamOwner, http.StatusForbidden},
		{ErrDuplicateSubmission, http.StatusBadRequest},
		{ErrInvalidReference, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", ErrStorageUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tc.err)
		assert.Equal(t, tc.code, w.Code, tc.err.Error())

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	}
}

func TestHandleErrorFieldErrors(t *testing.T) {
	verr := &ValidationError{}
	verr.Add("title", "is required")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	HandleError(c, verr.OrNil())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "title", resp.Errors[0].Field)

	assert.Nil(t, (&ValidationError{}).OrNil())
}
