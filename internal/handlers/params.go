package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/clinic-billing-api/internal/middleware"
	"github.com/sjperalta/clinic-billing-api/internal/repository"
)

// errBadRequest marks malformed path or query parameters
var errBadRequest = errors.New("bad request")

func tenantOf(c *gin.Context) string {
	return middleware.GetTenantID(c)
}

// intQuery reads an optional integer query parameter; absent means 0
func intQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}

// intParam reads a required integer path parameter
func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadRequest, name)
	}
	return v, nil
}

// idParam reads a required positive id path parameter
func idParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return uint(v), nil
}

// parseDate accepts RFC 3339 timestamps or plain dates, the latter read in loc
func parseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date (YYYY-MM-DD)", errBadRequest, value)
	}
	return t, nil
}

// dateWindow reads start_date/end_date; end_date covers its whole day
func dateWindow(c *gin.Context, loc *time.Location) (repository.DateWindow, error) {
	var w repository.DateWindow
	if raw := c.Query("start_date"); raw != "" {
		from, err := parseDate(raw, loc)
		if err != nil {
			return w, err
		}
		w.From = &from
	}
	if raw := c.Query("end_date"); raw != "" {
		to, err := parseDate(raw, loc)
		if err != nil {
			return w, err
		}
		if _, dateOnly := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), loc); dateOnly == nil {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		w.To = &to
	}
	return w, nil
}

// listQuery reads paging, search and "field-direction" sorting
func listQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		query.Page = page
	}
	if perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "20")); err == nil && perPage > 0 && perPage <= 100 {
		query.PerPage = perPage
	}
	query.Search = c.Query("search")

	if sort := c.Query("sort"); sort != "" {
		parts := strings.Split(sort, "-")
		query.SortBy = parts[0]
		if len(parts) > 1 {
			query.SortDir = parts[1]
		}
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":        query.Page,
		"per_page":    query.PerPage,
		"total":       total,
		"total_pages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}
