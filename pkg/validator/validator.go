package validator

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jwalitptl/scheduling-api/internal/model"
	"github.com/jwalitptl/scheduling-api/pkg/errors"
)

// NonFieldKey collects errors that do not belong to a single field.
const NonFieldKey = "detail"

const (
	MsgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgTimeFormat = "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."
)

var setupOnce sync.Once

// Setup registers json field naming and custom rules on gin's validator engine.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		if err := v.RegisterValidation("clocktime", validateClock); err != nil {
			panic(err)
		}
		// Present but blank strings are rejected; absent ones are skipped by omitempty.
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
	})
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := model.ParseClock(fl.Field().String())
	return err == nil
}

// BindJSON decodes the request body into obj and validates it. Any failure
// is returned as a validation AppError with per-field messages. An empty
// body is validated as an empty object.
func BindJSON(c *gin.Context, obj interface{}) error {
	Setup()

	err := c.ShouldBindJSON(obj)
	if stderrors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		return errors.Validation(FieldErrors(err))
	}
	return nil
}

// FieldErrors translates binding and validation errors into a field map.
func FieldErrors(err error) map[string][]string {
	fields := make(map[string][]string)

	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case stderrors.As(err, &verrs):
		for _, fe := range verrs {
			fields[fe.Field()] = append(fields[fe.Field()], message(fe))
		}
	case stderrors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = NonFieldKey
		}
		fields[field] = append(fields[field], fmt.Sprintf("Incorrect type. Expected %s, but got %s.", typeErr.Type.Kind(), typeErr.Value))
	case stderrors.As(err, &syntaxErr):
		fields[NonFieldKey] = append(fields[NonFieldKey], "JSON parse error - "+syntaxErr.Error())
	default:
		fields[NonFieldKey] = append(fields[NonFieldKey], err.Error())
	}

	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "notblank":
		return "This field may not be blank."
	case "email":
		return "Enter a valid email address."
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "datetime":
		return MsgDateFormat
	case "clocktime":
		return MsgTimeFormat
	case "gt", "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}
