package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MessagePrefix открывает сообщение об ошибках валидации
const MessagePrefix = "Invalid data: "

// Тексты нарушений по тегам validate
var violations = map[string]string{
	"notblank": "must not be blank",
	"required": "must not be null",
}

// FieldError - нарушение для одного поля
type FieldError struct {
	Field   string
	Message string
}

func (fe FieldError) String() string {
	return fmt.Sprintf("Field '%s' %s. ", fe.Field, fe.Message)
}

// Error собирает все нарушения запроса
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(MessagePrefix)
	for _, fe := range e.Fields {
		b.WriteString(fe.String())
	}
	return b.String()
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	// В сообщениях используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct возвращает *Error с нарушениями в порядке объявления полей или nil
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return out
}

func violationMessage(fe validator.FieldError) string {
	if msg, ok := violations[fe.Tag()]; ok {
		return msg
	}
	return "is invalid"
}
