// Package binding turns request bodies into typed DTOs and reports
// malformed input as validation errors naming the offending field.
package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/folio-space/core/internal/pkg/apperr"
	"github.com/gin-gonic/gin"
	ginbinding "github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := ginbinding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// FormNormalizer is implemented by DTOs whose fields read differently from
// form values than from JSON, such as comma-separated lists.
type FormNormalizer interface {
	NormalizeForm()
}

// Bind decodes JSON, urlencoded or multipart bodies into dst and validates it.
// An empty JSON body is treated as an empty object.
func Bind(c *gin.Context, dst any) error {
	err := c.ShouldBind(dst)
	if errors.Is(err, io.EOF) {
		err = ginbinding.Validator.ValidateStruct(dst)
	}
	if err != nil {
		return translate(c, dst, err)
	}
	if n, ok := dst.(FormNormalizer); ok && c.ContentType() != gin.MIMEJSON {
		n.NormalizeForm()
	}
	return nil
}

func translate(c *gin.Context, dst any, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperr.Validation(describe(verrs[0]))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		name := typeErr.Field
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		if name == "" {
			return apperr.Validation("invalid request body")
		}
		return apperr.Validationf("%s must be %s", name, kindNoun(typeErr.Type.Kind()))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return apperr.Validation("invalid JSON body")
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if msg, ok := scanForm(c, dst); ok {
			return apperr.Validation(msg)
		}
		return apperr.Validationf("invalid value %q", numErr.Num)
	}

	return apperr.Validation(err.Error())
}

// scanForm finds the first form value that cannot be parsed into its field.
func scanForm(c *gin.Context, dst any) (string, bool) {
	rt := reflect.TypeOf(dst)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return "", false
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name := strings.Split(f.Tag.Get("form"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		raw, ok := c.GetPostForm(name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if _, err := strconv.Atoi(strings.TrimSpace(raw)); err != nil {
				return name + " must be an integer", true
			}
		case reflect.Bool:
			if _, err := strconv.ParseBool(strings.TrimSpace(raw)); err != nil {
				return name + " must be a boolean", true
			}
		}
	}
	return "", false
}

func describe(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s accepts at most %s items", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "email":
		return name + " must be a valid email"
	case "url":
		return name + " must be a valid URL"
	default:
		return name + " is invalid"
	}
}

func kindNoun(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "a list"
	case reflect.Struct, reflect.Map:
		return "an object"
	default:
		return "a string"
	}
}

// fieldName reports the json name, falling back to the form name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.Split(f.Tag.Get(tag), ",")[0]
		if name == "-" {
			continue
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}
