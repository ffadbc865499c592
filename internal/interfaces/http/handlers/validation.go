package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"profile-api.backend/internal/domain/entities"
	domainerrors "profile-api.backend/internal/domain/errors"
)

const (
	tagDate          = "date"
	tagSkillShape    = "skill_shape"
	tagEndAfterStart = "end_after_start"
)

var registerOnce sync.Once

// RegisterValidators installs the custom rules on gin's validator and makes
// error paths use json/form names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation(tagDate, func(fl validator.FieldLevel) bool {
			_, err := entities.ParseDate(fl.Field().String())
			return err == nil
		})

		v.RegisterStructValidation(skillShapeRule, entities.SkillInput{})
		v.RegisterStructValidation(workDatesRule, entities.WorkExperienceInput{})
	})
}

func skillShapeRule(sl validator.StructLevel) {
	skill := sl.Current().Interface().(entities.SkillInput)
	switch {
	case skill.Malformed():
		sl.ReportError(sl.Current().Interface(), "", "", tagSkillShape, "")
	case skill.Name == "":
		sl.ReportError(skill.Name, "name", "Name", "required", "")
	}
}

func workDatesRule(sl validator.StructLevel) {
	work := sl.Current().Interface().(entities.WorkExperienceInput)
	if work.EndDate == "" {
		return
	}
	start, err := entities.ParseDate(work.StartDate)
	if err != nil {
		return
	}
	end, err := entities.ParseDate(work.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(work.EndDate, "end_date", "EndDate", tagEndAfterStart, "start_date")
	}
}

// bindJSON decodes and validates the request body, returning a
// VALIDATION_ERROR that lists every failing field.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

// bindQuery is bindJSON for query parameters. Integer parameters are checked
// up front so every malformed one is reported under its own name.
func bindQuery(c *gin.Context, dst interface{}) error {
	if details := integerQueryErrors(c, dst); len(details) > 0 {
		return domainerrors.Validation(details)
	}
	if err := c.ShouldBindQuery(dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

func integerQueryErrors(c *gin.Context, dst interface{}) []domainerrors.FieldError {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var details []domainerrors.FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		kind := f.Type.Kind()
		if kind == reflect.Pointer {
			kind = f.Type.Elem().Kind()
		}
		if kind != reflect.Int {
			continue
		}
		raw, ok := c.GetQuery(name)
		if !ok || raw == "" {
			continue
		}
		if _, err := strconv.Atoi(raw); err != nil {
			details = append(details, domainerrors.FieldError{
				Field:   name,
				Message: "must be an integer",
				Value:   raw,
			})
		}
	}
	return details
}

func toValidationError(err error) *domainerrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]domainerrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError(fe))
		}
		return domainerrors.Validation(details)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domainerrors.Validation([]domainerrors.FieldError{{
			Field:   field,
			Message: "must be " + jsonKind(typeErr.Type),
		}})
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return domainerrors.Validation([]domainerrors.FieldError{{
			Field:   "query",
			Message: "must be an integer",
			Value:   numErr.Num,
		}})
	}

	if errors.Is(err, io.EOF) {
		return domainerrors.Validation([]domainerrors.FieldError{{Field: "body", Message: "is required"}})
	}

	return domainerrors.Validation([]domainerrors.FieldError{{Field: "body", Message: "must be valid JSON"}})
}

func fieldError(fe validator.FieldError) domainerrors.FieldError {
	out := domainerrors.FieldError{
		Field:   fieldPath(fe.Namespace()),
		Message: fieldMessage(fe),
	}
	if fe.Tag() != "required" {
		switch fe.Kind() {
		case reflect.String, reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Float64:
			out.Value = fe.Value()
		}
	}
	return out
}

// fieldPath drops the root struct name: "ProfileInput.skills[2].name" -> "skills[2].name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.TrimSuffix(ns, ".")
}

func fieldMessage(fe validator.FieldError) string {
	isCollection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case tagDate:
		return "must be a date in YYYY-MM-DD or RFC3339 format"
	case tagSkillShape:
		return "must be a string or an object with a name"
	case tagEndAfterStart:
		return "must not be before " + fe.Param()
	case "min":
		switch {
		case isText:
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		case isCollection:
			return fmt.Sprintf("must contain at least %s items", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		switch {
		case isText:
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		case isCollection:
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	}
	return "a valid value"
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param, code, message string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, domainerrors.BadRequest(code, message)
	}
	return uint(id), nil
}
