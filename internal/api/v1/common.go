package v1

import (
	"time"

	"github.com/freshcrate/freshcrate/internal/types"
	"github.com/gin-gonic/gin"
)

// resolveToday returns the reference date for schedule computations: the
// optional `date` query parameter (YYYY-MM-DD) when present, otherwise the
// current UTC date. The clock is read once here; everything below the
// handler takes the date as an argument.
func resolveToday(c *gin.Context) (time.Time, error) {
	if raw := c.Query("date"); raw != "" {
		return types.ParseDateOnly(raw)
	}
	return types.NormalizeDate(time.Now().UTC()), nil
}
