// Package validation checks configuration structs.
//
// Struct tags are handled by go-playground/validator and reported as an
// errors.AppError with one FieldError per failing field, named by the
// field's mapstructure key:
//
//	type TableConfig struct {
//	    Source string `mapstructure:"source" validate:"required,dataset"`
//	}
//	err := validation.Validate(cfg)
//
// Rules spanning several fields use the collecting Validator:
//
//	v := validation.New()
//	v.OptionalUUID("uuid.namespace", ns).Unique("hidden", hidden)
//	err := v.Err()
package validation
