// File: /controllers/helpers.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carservice-api/models"
	"carservice-api/repositories"
	"carservice-api/utils"
)

// pageFromQuery reads page, per_page and no_paginate from the query string.
func pageFromQuery(c *gin.Context, defaultPerPage int) repositories.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))
	_, noPaginate := c.GetQuery("no_paginate")

	return repositories.Page{
		Page:       page,
		PerPage:    perPage,
		NoPaginate: noPaginate,
	}.Normalize(defaultPerPage)
}

func sendList[T any](c *gin.Context, items []T, page repositories.Page, total int64) {
	if page.NoPaginate {
		utils.SendAll(c, items)
		return
	}
	utils.SendList(c, items, page.Page, page.PerPage, total)
}

// sendServiceError maps domain errors to HTTP responses. Unknown errors are
// attached to the context for ErrorHandler.
func sendServiceError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		utils.SendError(c, http.StatusNotFound, notFound)
	case errors.Is(err, models.ErrInvalidStatusTransition):
		utils.SendUnprocessable(c, "Only pending reminders can be completed or dismissed")
	case errors.Is(err, models.ErrEmailTaken):
		utils.SendError(c, http.StatusConflict, "Email already registered")
	default:
		_ = c.Error(err)
	}
}
