// File: /utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request. Message carries the
// detail of validation failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// ActionResponse confirms a create, update or delete and carries the
// resource as stored after the change.
type ActionResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse is one page of a collection. Data is never null.
type ListResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasMore    bool  `json:"has_more"`
}

// NewListResponse builds a page envelope. An empty collection still reports
// one page.
func NewListResponse[T any](items []T, page, limit int, total int64) ListResponse[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 1
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return ListResponse[T]{
		Data:       items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

func SendList[T any](c *gin.Context, items []T, page, limit int, total int64) {
	c.JSON(http.StatusOK, NewListResponse(items, page, limit, total))
}

// SendAll returns a whole collection without paging metadata.
func SendAll[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func SendError(c *gin.Context, status int, err string) {
	c.JSON(status, ErrorResponse{Error: err, Code: status})
}

func SendValidationError(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Validation failed",
		Message: detail,
		Code:    http.StatusBadRequest,
	})
}

// SendUnprocessable reports a well-formed request the current state of the
// resource does not allow.
func SendUnprocessable(c *gin.Context, err string) {
	SendError(c, http.StatusUnprocessableEntity, err)
}

func SendSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ActionResponse{Message: message, Data: data})
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ActionResponse{Message: message, Data: data})
}
