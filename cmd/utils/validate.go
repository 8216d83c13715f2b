package utils

import (
	validator "gopkg.in/go-playground/validator.v9"
)

var validate = validator.New()

// ValidateStruct runs the validator tags of a request DTO and turns
// the first failure into a 400.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return BadRequest(err.Error())
	}
	return nil
}
