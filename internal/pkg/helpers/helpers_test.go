package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("not-a-duration", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
}

func TestAddDays(t *testing.T) {
	base := time.Date(2026, 2, 26, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC), AddDays(base, 7))
	assert.Equal(t, time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC), AddDays(base, -7))
}

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseOptionalInt64Query(t *testing.T) {
	c := queryContext(t, "courseId=42&bad=abc")

	v := ParseOptionalInt64Query(c, "courseId")
	require.NotNil(t, v)
	assert.Equal(t, int64(42), *v)

	assert.Nil(t, ParseOptionalInt64Query(c, "bad"))
	assert.Nil(t, ParseOptionalInt64Query(c, "missing"))
}

func TestParseOptionalTimeQuery(t *testing.T) {
	c := queryContext(t, "start=2026-03-02T09:00:00Z&day=2026-03-02&bad=tomorrow")

	ts := ParseOptionalTimeQuery(c, "start")
	require.NotNil(t, ts)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), ts.UTC())

	day := ParseOptionalTimeQuery(c, "day")
	require.NotNil(t, day)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day.UTC())

	assert.Nil(t, ParseOptionalTimeQuery(c, "bad"))
	assert.Nil(t, ParseOptionalTimeQuery(c, "missing"))
}

func TestParseLimitQuery(t *testing.T) {
	c := queryContext(t, "limit=25&zero=0&negative=-3&bad=x")

	assert.Equal(t, 25, ParseLimitQuery(c, "limit", 50))
	assert.Equal(t, 50, ParseLimitQuery(c, "zero", 50))
	assert.Equal(t, 50, ParseLimitQuery(c, "negative", 50))
	assert.Equal(t, 50, ParseLimitQuery(c, "bad", 50))
	assert.Equal(t, 50, ParseLimitQuery(c, "missing", 50))
}
