package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams holds the parsed page-number pagination parameters of a request.
type PageParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginatedResponse is the pagination envelope: total count, links to the
// neighbouring pages and the current page of results.
type PaginatedResponse struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// Pagination presets per resource
var (
	MessagePagination      = PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100}
	ConversationPagination = PaginationConfig{DefaultPageSize: 10, MaxPageSize: 50}
)

// PaginationConfig bounds the page size a client may request.
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// ParsePageParams reads the page and page_size query parameters, applying the
// config's default and cap.
func ParsePageParams(c *gin.Context, cfg PaginationConfig) PageParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(cfg.DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = cfg.DefaultPageSize
	}
	if pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}
	return PageParams{Page: page, PageSize: pageSize}
}

// Paginate builds the response envelope for one page of results.
func Paginate(c *gin.Context, params PageParams, count int64, results interface{}) PaginatedResponse {
	response := PaginatedResponse{Count: count, Results: results}

	lastPage := int((count + int64(params.PageSize) - 1) / int64(params.PageSize))
	if params.Page < lastPage {
		next := pageLink(c, params.Page+1, params.PageSize)
		response.Next = &next
	}
	if params.Page > 1 {
		previous := pageLink(c, params.Page-1, params.PageSize)
		response.Previous = &previous
	}
	return response
}

func pageLink(c *gin.Context, page, pageSize int) string {
	return fmt.Sprintf("%s?page=%d&page_size=%d", c.Request.URL.Path, page, pageSize)
}
