package helpers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseOptionalInt64Query reads an optional int64 query parameter.
// Returns nil when the parameter is absent or malformed.
func ParseOptionalInt64Query(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseOptionalTimeQuery reads an optional RFC3339 (or date-only) query
// parameter. Returns nil when absent or malformed.
func ParseOptionalTimeQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

// ParseLimitQuery reads an optional limit parameter, falling back to the
// provided default and clamping non-positive values.
func ParseLimitQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
