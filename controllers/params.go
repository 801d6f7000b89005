package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/morsechimwai/blog-api/config"
)

// listParams reads the limit/offset query parameters, falling back to the
// configured defaults. Limit is capped at 100.
func listParams(c *gin.Context, cfg config.Config) (limit, offset int, err error) {
	limit = cfg.DefaultLimit
	offset = cfg.DefaultOffset

	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, fmt.Errorf("limit must be a positive integer")
		}
		if limit > 100 {
			return 0, 0, fmt.Errorf("limit must be between 1 and 100")
		}
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("offset must be a non-negative integer")
		}
	}

	return limit, offset, nil
}
