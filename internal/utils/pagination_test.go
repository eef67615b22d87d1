package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParsePageParamsDefaults(t *testing.T) {
	c := testContext(t, "/api/v1/messages")

	params := ParsePageParams(c, MessagePagination)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.PageSize)
	assert.Equal(t, 0, params.Offset())
}

func TestParsePageParamsCapsPageSize(t *testing.T) {
	c := testContext(t, "/api/v1/messages?page=3&page_size=500")

	params := ParsePageParams(c, MessagePagination)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 100, params.PageSize)
	assert.Equal(t, 200, params.Offset())
}

func TestParsePageParamsRejectsGarbage(t *testing.T) {
	c := testContext(t, "/api/v1/conversations?page=-1&page_size=abc")

	params := ParsePageParams(c, ConversationPagination)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.PageSize)
}

func TestPaginateLinks(t *testing.T) {
	c := testContext(t, "/api/v1/messages?page=2&page_size=10")
	params := ParsePageParams(c, MessagePagination)

	response := Paginate(c, params, 35, []string{"a", "b"})
	assert.Equal(t, int64(35), response.Count)
	require.NotNil(t, response.Next)
	require.NotNil(t, response.Previous)
	assert.Equal(t, "/api/v1/messages?page=3&page_size=10", *response.Next)
	assert.Equal(t, "/api/v1/messages?page=1&page_size=10", *response.Previous)
}

func TestPaginateBoundaryPages(t *testing.T) {
	first := Paginate(testContext(t, "/api/v1/messages"), PageParams{Page: 1, PageSize: 20}, 15, nil)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)

	last := Paginate(testContext(t, "/api/v1/messages?page=2"), PageParams{Page: 2, PageSize: 20}, 25, nil)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
}
