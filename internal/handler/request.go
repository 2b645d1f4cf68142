package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taxidash/internal/domain"
)

// ErrInvalidQuery is returned when a query parameter cannot be parsed.
var ErrInvalidQuery = errors.New("invalid query parameter")

// parseFilter reads the filter controls. Absent parameters keep the reset state.
func parseFilter(c *gin.Context) (domain.FilterCriteria, error) {
	filter := domain.DefaultFilter()
	filter.StartDate = strings.TrimSpace(c.Query("start_date"))
	filter.EndDate = strings.TrimSpace(c.Query("end_date"))

	if raw := strings.TrimSpace(c.Query("payment_type")); raw != "" {
		filter.PaymentType = domain.PaymentType(raw)
	}

	maxDistance, ok, err := floatQuery(c, "max_distance")
	if err != nil {
		return filter, err
	}
	if ok {
		filter.MaxDistance = maxDistance
	}

	return filter, nil
}

// parseViewRequest reads the complete dashboard state from the query string.
func parseViewRequest(c *gin.Context) (domain.ViewRequest, error) {
	req := domain.DefaultViewRequest()

	filter, err := parseFilter(c)
	if err != nil {
		return req, err
	}
	req.Filter = filter
	req.Search = c.Query("search")

	if raw := strings.TrimSpace(c.Query("sort_by")); raw != "" {
		req.SortBy = domain.SortField(raw)
	}

	page, ok, err := intQuery(c, "page")
	if err != nil {
		return req, err
	}
	if ok {
		req.Page.PageNumber = page
	}

	// Zero lets the service apply the configured page size.
	req.Page.PageSize = 0
	size, ok, err := intQuery(c, "page_size")
	if err != nil {
		return req, err
	}
	if ok {
		req.Page.PageSize = size
	}

	return req, nil
}

func intQuery(c *gin.Context, key string) (int, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}
	return v, true, nil
}

func floatQuery(c *gin.Context, key string) (float64, bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s=%q", ErrInvalidQuery, key, raw)
	}
	return v, true, nil
}
