package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kbukum/fixturekit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("source", "users.yml")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("source", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("source", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorOptionalUUID(t *testing.T) {
	v := New()
	v.OptionalUUID("namespace", "")
	if v.HasErrors() {
		t.Error("expected no error for empty optional UUID")
	}

	v2 := New()
	v2.OptionalUUID("namespace", uuid.NameSpaceURL.String())
	if v2.HasErrors() {
		t.Error("expected no error for valid optional UUID")
	}

	v3 := New()
	v3.OptionalUUID("namespace", "bad-uuid")
	if !v3.HasErrors() {
		t.Error("expected error for invalid optional UUID")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("format", "yaml", []string{"yaml", "json"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("format", "ini", []string{"yaml", "json"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("format", "", []string{"yaml"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorUnique(t *testing.T) {
	v := New()
	v.Unique("hidden", []string{"password", "token"})
	if v.HasErrors() {
		t.Error("expected no error for distinct values")
	}

	v2 := New()
	v2.Unique("hidden", []string{"password", "token", "password"})
	if len(v2.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", v2.Errors())
	}
	if !strings.Contains(v2.Errors()[0].Message, `"password"`) {
		t.Errorf("expected duplicate named in message, got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("source", "users.yml")
	if appErr := v.Validate(); appErr != nil {
		t.Error("expected nil for valid input")
	}
	if err := v.Err(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}

	v2 := New()
	v2.Required("source", "")
	v2.Required("table", "")
	appErr2 := v2.Validate()
	if appErr2 == nil {
		t.Fatal("expected error")
	}
	if appErr2.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr2.Message, "source") || !strings.Contains(appErr2.Message, "table") {
		t.Errorf("expected both fields in message, got %q", appErr2.Message)
	}
	if !errors.HasCode(v2.Err(), errors.ErrCodeValidation) {
		t.Errorf("expected %s, got %v", errors.ErrCodeValidation, v2.Err())
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("source", "users.yml").OneOf("format", "yaml", []string{"yaml"}).Unique("hidden", nil)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type tableInput struct {
	Source     string `mapstructure:"source" validate:"required"`
	PrimaryKey string `mapstructure:"primary_key" validate:"max=8"`
	Format     string `validate:"omitempty,oneof=yaml json"`
}

type catalogInput struct {
	Tables map[string]tableInput `mapstructure:"tables" validate:"dive"`
}

func TestStructValidateValid(t *testing.T) {
	err := Validate(tableInput{Source: "users.yml", PrimaryKey: "id", Format: "yaml"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	err := Validate(tableInput{PrimaryKey: "much_too_long", Format: "ini"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %v", fields)
	}
	want := []string{"source", "primary_key", "format"}
	for i, f := range fields {
		if f.Field != want[i] {
			t.Errorf("field %d: expected %q, got %q", i, want[i], f.Field)
		}
	}
}

func TestStructValidateNestedNames(t *testing.T) {
	err := Validate(catalogInput{Tables: map[string]tableInput{"users": {}}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "tables[users].source: is required") {
		t.Errorf("expected nested field path, got %q", err.Error())
	}
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation("lowercase_key", func(fl validator.FieldLevel) bool {
		return strings.ToLower(fl.Field().String()) == fl.Field().String()
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	type input struct {
		Key string `validate:"lowercase_key"`
	}
	if err := Validate(input{Key: "id"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := Validate(input{Key: "ID"}); err == nil {
		t.Error("expected error for upper case key")
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Source":     "source",
		"PrimaryKey": "primary_key",
		"ID":         "i_d",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
