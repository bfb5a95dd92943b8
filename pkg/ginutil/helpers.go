package ginutil

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID extracts a positive int64 path parameter.
// ok is false for anything else, including zero and negative values.
func ParamID(c *gin.Context, key string) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

