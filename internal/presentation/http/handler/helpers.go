package handler

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"github.com/sangkips/laundromart-api/internal/presentation/http/middleware"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/pagination"
	"github.com/spf13/cast"
)

// GetPrincipal extracts the authenticated caller from the Gin context
func GetPrincipal(c *gin.Context) (access.Principal, bool) {
	v, exists := c.Get(middleware.ContextPrincipal)
	if !exists {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// principal writes a 401 and returns false when the request carries no caller
func principal(c *gin.Context) (access.Principal, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
	}
	return p, ok
}

// parseID reads a UUID path parameter, writing a 400 on failure
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pageQuery reads page and per_page, leaving clamping to the pagination package
func pageQuery(c *gin.Context) *pagination.PaginationParams {
	return &pagination.PaginationParams{
		Page:    cast.ToInt(c.DefaultQuery("page", "1")),
		PerPage: cast.ToInt(c.DefaultQuery("per_page", "15")),
	}
}

func queryUUID(c *gin.Context, key string) *uuid.UUID {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// queryDate accepts any date layout dateparse recognises; unparseable values are ignored
func queryDate(c *gin.Context, key string, loc *time.Location) *time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, loc)
	if err != nil {
		return nil
	}
	return &t
}

// queryRange reads start_date and end_date as whole days; the returned end
// is exclusive so the end date itself is included
func queryRange(c *gin.Context, loc *time.Location) (start, end *time.Time) {
	if s := queryDate(c, "start_date", loc); s != nil {
		day := ledger.StartOfDay(*s, loc)
		start = &day
	}
	if e := queryDate(c, "end_date", loc); e != nil {
		next := ledger.StartOfDay(*e, loc).AddDate(0, 0, 1)
		end = &next
	}
	return start, end
}

// queryBool accepts the strconv.ParseBool forms; anything else is false
func queryBool(c *gin.Context, key string) bool {
	return cast.ToBool(c.Query(key))
}

// bodyDates parses optional date fields from a request body and collects
// one field error per unparseable value
type bodyDates struct {
	loc  *time.Location
	errs []apperror.FieldError
}

func (d *bodyDates) parse(field string, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(*raw), d.loc)
	if err != nil {
		d.errs = append(d.errs, apperror.FieldError{Field: field, Message: "Not a recognised date"})
		return nil
	}
	return &t
}

// reject writes the collected errors and reports whether there were any
func (d *bodyDates) reject(c *gin.Context) bool {
	if len(d.errs) == 0 {
		return false
	}
	response.ValidationError(c, d.errs)
	return true
}
