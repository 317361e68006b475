package controllers

import (
	"context"
	"strconv"

	"torget-app-io/api/internal/common"
	"torget-app-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// WithTimeout returns a request-scoped context with the standard timeout.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), common.REQUEST_TIMEOUT_SECS)
}

// SessionID identifies the cart owner. The storefront sends a stable session
// identifier; without one there is no cart to operate on.
func SessionID(c *gin.Context) (string, error) {
	sessionID := c.GetHeader("X-Session-Id")
	if common.IsEmptyString(sessionID) {
		return "", errors.New("missing X-Session-Id header")
	}
	return sessionID, nil
}

// GetPaginationArgs reads limit/skip/sort query values with sane defaults.
func GetPaginationArgs(c *gin.Context) util.PaginationArgs {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	return util.PaginationArgs{
		Limit: limit,
		Skip:  skip,
		Sort:  c.DefaultQuery("sort", "created_at.desc"),
	}
}
