package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"transferhub/internal/http/middleware"
	"transferhub/internal/listview"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// PathID parses the :id param; responds 400 and returns false on garbage.
func PathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}

// ListParams reads the shared list query state from the URL.
func ListParams(c *gin.Context) listview.Params {
	p := listview.Params{
		Filters: listview.Filters{
			Text:   c.Query("search"),
			Date:   c.Query("date"),
			Status: c.Query("status"),
		},
	}

	if by := c.Query("sort_by"); by != "" {
		dir := listview.Ascending
		if c.Query("direction") == string(listview.Descending) {
			dir = listview.Descending
		}
		p.Sort = &listview.Sort{Key: by, Direction: dir}
	}

	p.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	p.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return p
}
