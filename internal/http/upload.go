package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxUploadMemory = 32 << 20

var errUploadType = errors.New("file type not allowed")

var allowedUploadExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"pdf":  {},
}

func allowedFile(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	_, ok := allowedUploadExtensions[ext]
	return ok
}

// readUpload returns the base64 content of an optional multipart file, or nil when absent.
func readUpload(c *gin.Context, field string) (*string, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	if !allowedFile(header.Filename) {
		return nil, errUploadType
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", field, err)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return &encoded, nil
}

// bindFields reads a JSON object or a form body into one map. Repeated form
// values become lists.
func bindFields(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == gin.MIMEJSON {
		fields := map[string]any{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, err
		}
		return fields, nil
	}

	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	fields := make(map[string]any, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		switch len(values) {
		case 0:
		case 1:
			fields[key] = values[0]
		default:
			list := make([]any, 0, len(values))
			for _, value := range values {
				list = append(list, value)
			}
			fields[key] = list
		}
	}
	return fields, nil
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				result = append(result, s)
			}
		}
		return result
	default:
		return []string{}
	}
}
