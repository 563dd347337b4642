package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const errValidationFailed = "validation failed"

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type validationResponse struct {
	Error  string       `json:"error"`
	Detail []fieldError `json:"detail"`
}

func newValidationResponse(details ...fieldError) validationResponse {
	return validationResponse{Error: errValidationFailed, Detail: details}
}

var registerFieldNamesOnce sync.Once

// registerJSONFieldNames makes validator report json names ("client_name")
// instead of Go field names.
func registerJSONFieldNames() {
	registerFieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bindJSONOrValidationError binds the body into dst and writes a 422 with
// field details on failure. Returns false if the request was handled.
func (h *Handler) bindJSONOrValidationError(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusUnprocessableEntity, newValidationResponse(describeBindError(err)...))
		return false
	}
	return true
}

func describeBindError(err error) []fieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Reason: fe.Tag()})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			// the body itself is not an object
			field = "body"
		}
		return []fieldError{{Field: field, Reason: "expected " + typeErr.Type.String()}}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return []fieldError{{Field: "body", Reason: "invalid JSON"}}
	}
	if errors.Is(err, io.EOF) {
		return []fieldError{{Field: "body", Reason: "required"}}
	}
	return []fieldError{{Field: "body", Reason: err.Error()}}
}
