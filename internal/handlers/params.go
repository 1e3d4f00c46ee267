package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func queryUint(c *gin.Context, name string) uint {
	v := c.Query(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

func paramUint(c *gin.Context, name string) uint {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0
	}
	return uint(n)
}

// dateRange applies optional start_date / end_date filters (YYYY-MM-DD).
// Unparseable values are ignored, like the other list filters.
func dateRange(c *gin.Context, q *gorm.DB, column string) *gorm.DB {
	if s := c.Query("start_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			q = q.Where(column+" >= ?", t)
		}
	}
	if s := c.Query("end_date"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			// inclusive end of day
			q = q.Where(column+" < ?", t.AddDate(0, 0, 1))
		}
	}
	return q
}
