package storefrontserver

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// pageParams are the skip/take query parameters shared by list endpoints.
type pageParams struct {
	Skip int
	Take int
}

// bindPage reads optional skip and take. Absent values stay zero so services apply their defaults.
func bindPage(c *gin.Context) (pageParams, error) {
	var page pageParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "skip", query, &page.Skip); err != nil {
		return pageParams{}, fmt.Errorf("invalid format for parameter skip: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "take", query, &page.Take); err != nil {
		return pageParams{}, fmt.Errorf("invalid format for parameter take: %w", err)
	}
	if page.Skip < 0 {
		return pageParams{}, fmt.Errorf("skip must not be negative")
	}
	if page.Take < 0 {
		return pageParams{}, fmt.Errorf("take must not be negative")
	}
	return page, nil
}

// bindString reads an optional string query parameter.
func bindString(c *gin.Context, name string) (string, error) {
	var value string
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		return "", fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return value, nil
}
