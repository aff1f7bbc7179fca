package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/presentation/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestQueryRangeIncludesEndDate(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	c, _ := testContext("/?start_date=2026-06-01&end_date=2026-06-03")

	start, end := queryRange(c, loc)
	require.NotNil(t, start)
	require.NotNil(t, end)
	assert.True(t, start.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, loc)))
	assert.True(t, end.Equal(time.Date(2026, 6, 4, 0, 0, 0, 0, loc)))
}

func TestQueryRangeIgnoresGarbage(t *testing.T) {
	c, _ := testContext("/?start_date=yesterday-ish")
	start, end := queryRange(c, time.UTC)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestPageQueryDefaults(t *testing.T) {
	c, _ := testContext("/?per_page=abc")
	p := pageQuery(c)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.PerPage)

	c, _ = testContext("/?page=3&per_page=50")
	p = pageQuery(c)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
}

func TestQueryUUIDAndBool(t *testing.T) {
	id := uuid.New()
	c, _ := testContext("/?customer_id=" + id.String() + "&low_stock=true&bad=nope")
	require.NotNil(t, queryUUID(c, "customer_id"))
	assert.Equal(t, id, *queryUUID(c, "customer_id"))
	assert.Nil(t, queryUUID(c, "missing"))
	assert.True(t, queryBool(c, "low_stock"))
	assert.False(t, queryBool(c, "bad"))
}

func TestBodyDates(t *testing.T) {
	good, bad, blank := "2026-06-15", "the fifteenth", "  "
	c, w := testContext("/")

	dates := bodyDates{loc: time.UTC}
	got := dates.parse("loan_date", &good)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Day())
	assert.Nil(t, dates.parse("due_date", &blank))
	assert.Nil(t, dates.parse("due_date", nil))
	assert.False(t, dates.reject(c))

	assert.Nil(t, dates.parse("due_date", &bad))
	assert.True(t, dates.reject(c))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "due_date")
}

func TestParseIDAndPrincipal(t *testing.T) {
	c, w := testContext("/")
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok := parseID(c, "id", "order")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = testContext("/")
	_, ok = principal(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = testContext("/")
	want := access.Principal{UserID: uuid.New(), Role: enum.AppRoleAdmin}
	c.Set(middleware.ContextPrincipal, want)
	got, ok := GetPrincipal(c)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}
