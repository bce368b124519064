package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dchirkov/eventum/dto"
	"github.com/dchirkov/eventum/models"
)

// pathID parses a numeric path parameter.
func pathID(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, models.Validationf("%s must be a positive number", name)
	}
	return uint(id), nil
}

// pageParams parses the from/size page window with the platform defaults.
func pageParams(ctx *gin.Context) (int, int, error) {
	from, err := strconv.Atoi(ctx.DefaultQuery("from", "0"))
	if err != nil || from < 0 {
		return 0, 0, models.Validationf("from must be zero or positive")
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		return 0, 0, models.Validationf("size must be positive")
	}
	return from, size, nil
}

// queryUintList parses a repeatable or comma-separated numeric query param.
func queryUintList(ctx *gin.Context, name string) ([]uint, error) {
	var out []uint
	for _, raw := range ctx.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return nil, models.Validationf("%s must contain numbers", name)
			}
			out = append(out, uint(v))
		}
	}
	return out, nil
}

func queryStringList(ctx *gin.Context, name string) []string {
	var out []string
	for _, raw := range ctx.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryTime parses an optional yyyy-MM-dd HH:mm:ss query param.
func queryTime(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := dto.ParseDateTime(raw)
	if err != nil {
		return nil, models.Validationf("%s must use the format %s", name, dto.TimeLayout)
	}
	return &t, nil
}

// queryBool parses an optional boolean query param.
func queryBool(ctx *gin.Context, name string) (*bool, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, models.Validationf("%s must be true or false", name)
	}
	return &v, nil
}
