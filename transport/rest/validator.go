package rest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	errUnexpectedValidator = errors.New("unexpected binding validator engine")

	registerOnce sync.Once
	errRegister  error
)

// RegisterValidations adds the "mark" and "difficulty" rules to gin's validator.
func RegisterValidations() error {
	registerOnce.Do(func() {
		validate, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			errRegister = errUnexpectedValidator
			return
		}

		if err := validate.RegisterValidation("mark", validateMark); err != nil {
			errRegister = fmt.Errorf("failed to register mark validation: %w", err)
			return
		}

		if err := validate.RegisterValidation("difficulty", validateDifficulty); err != nil {
			errRegister = fmt.Errorf("failed to register difficulty validation: %w", err)
		}
	})

	return errRegister
}

func validateMark(fl validator.FieldLevel) bool {
	_, err := entity.ParseMark(fl.Field().String())
	return err == nil
}

func validateDifficulty(fl validator.FieldLevel) bool {
	_, err := engine.ParseDifficulty(fl.Field().String())
	return err == nil
}
