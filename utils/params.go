package utils

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseID reads a positive integer path parameter
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var ErrNonPositiveID = errors.New("id must be a positive integer")

// QueryID reads an optional positive integer query parameter.
// present is false when the parameter is absent or empty.
func QueryID(c *gin.Context, name string) (id uint, present bool, err error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, true, err
	}
	if v == 0 {
		return 0, true, ErrNonPositiveID
	}
	return uint(v), true, nil
}

// BindJSON binds the request body into obj and treats an empty body as "{}"
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Keyword returns the search term from ?q=, falling back to ?keyword=
func Keyword(c *gin.Context) string {
	if q := c.Query("q"); q != "" {
		return q
	}
	return c.Query("keyword")
}
