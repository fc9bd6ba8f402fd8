package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	assert.True(t, IsValidPassword("secret12"))
	assert.False(t, IsValidPassword("secret"))
	assert.False(t, IsValidPassword("abc1"))

	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.True(t, IsValidCarYear(1900, now))
	assert.True(t, IsValidCarYear(2027, now))
	assert.False(t, IsValidCarYear(2028, now))
	assert.False(t, IsValidCarYear(1899, now))

	assert.True(t, IsValidVIN("1HGCM82633A004352"))
	assert.True(t, IsValidVIN(""))
	assert.False(t, IsValidVIN("1HGCM82633A0043521"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-21")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("21/10/2026")
	assert.Error(t, err)

	opt, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = ParseOptionalDate(" 2026-01-02 ")
	require.NoError(t, err)
	require.NotNil(t, opt)
	assert.Equal(t, 2, opt.Day())
}

func TestNewListResponse(t *testing.T) {
	page := NewListResponse([]string{"a", "b"}, 2, 2, 5)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)

	last := NewListResponse([]string{"e"}, 3, 2, 5)
	assert.False(t, last.HasMore)

	empty := NewListResponse[string](nil, 1, 0, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.NotNil(t, empty.Data)
	assert.False(t, empty.HasMore)
}

func TestSendList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SendList(c, []string{"a", "b"}, 2, 2, 5)

	require.Equal(t, http.StatusOK, w.Code)
	var body ListResponse[string]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"a", "b"}, body.Data)
	assert.Equal(t, 3, body.TotalPages)
	assert.Equal(t, 2, body.Limit)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	SendAll[string](c, nil)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestSendErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SendValidationError(c, "name is required")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Validation failed","message":"name is required","code":400}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	SendUnprocessable(c, "Only pending reminders can be completed or dismissed")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnprocessableEntity, body.Code)
	assert.Empty(t, body.Message)
}

func TestSendSuccessOmitsEmptyData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SendSuccess(c, "Car deleted successfully", nil)
	assert.JSONEq(t, `{"message":"Car deleted successfully"}`, w.Body.String())
}
