package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dchirkov/eventum/models"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", target, nil)
	return ctx
}

func TestPageParamsDefaults(t *testing.T) {
	from, size, err := pageParams(testContext(t, "/events"))
	require.NoError(t, err)
	require.Equal(t, 0, from)
	require.Equal(t, 10, size)
}

func TestPageParamsValidation(t *testing.T) {
	_, _, err := pageParams(testContext(t, "/events?from=-1"))
	require.True(t, models.IsValidation(err))

	_, _, err = pageParams(testContext(t, "/events?size=0"))
	require.True(t, models.IsValidation(err))

	from, size, err := pageParams(testContext(t, "/events?from=20&size=5"))
	require.NoError(t, err)
	require.Equal(t, 20, from)
	require.Equal(t, 5, size)
}

func TestQueryUintList(t *testing.T) {
	ids, err := queryUintList(testContext(t, "/admin/users?ids=1,2&ids=3"), "ids")
	require.NoError(t, err)
	require.Equal(t, []uint{1, 2, 3}, ids)

	_, err = queryUintList(testContext(t, "/admin/users?ids=abc"), "ids")
	require.True(t, models.IsValidation(err))

	ids, err = queryUintList(testContext(t, "/admin/users"), "ids")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestQueryTime(t *testing.T) {
	ts, err := queryTime(testContext(t, "/stats?start=2026-01-02+15:04:05"), "start")
	require.NoError(t, err)
	require.NotNil(t, ts)
	require.Equal(t, 2026, ts.Year())

	_, err = queryTime(testContext(t, "/stats?start=2026-01-02T15:04:05Z"), "start")
	require.True(t, models.IsValidation(err))

	ts, err = queryTime(testContext(t, "/stats"), "start")
	require.NoError(t, err)
	require.Nil(t, ts)
}

func TestQueryBool(t *testing.T) {
	b, err := queryBool(testContext(t, "/events?paid=true"), "paid")
	require.NoError(t, err)
	require.NotNil(t, b)
	require.True(t, *b)

	_, err = queryBool(testContext(t, "/events?paid=maybe"), "paid")
	require.True(t, models.IsValidation(err))

	b, err = queryBool(testContext(t, "/events"), "paid")
	require.NoError(t, err)
	require.Nil(t, b)
}
