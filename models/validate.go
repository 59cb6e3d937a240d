// Package models - haiku data models
package models

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

/*
RegisterWithValidator register with the validator this custom validation support

	@param v *validator.Validate - the validator to register against
	@return whether successful
*/
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation(
		"not_blank", validateNotBlank,
	); err != nil {
		return err
	}

	if err := v.RegisterValidation(
		"audit_event_type", validateAuditEventType,
	); err != nil {
		return err
	}

	return nil
}

// validateNotBlank string must contain something other than white space
func validateNotBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateAuditEventType(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	switch AuditEventTypeENUMType(fl.Field().String()) {
	case AuditEventTypeAddNewHaiku:
		fallthrough
	case AuditEventTypeDeleteHaiku:
		return true
	}
	return false
}
