package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryID reads a positive integer id from the query string.
func queryID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// page reads limit and offset; anything unparsable is left at zero and the
// article filter fills in defaults.
func page(ctx *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(ctx.Query("limit"))
	offset, _ = strconv.Atoi(ctx.Query("offset"))
	return limit, offset
}
