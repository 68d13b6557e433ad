package validator

import (
	"errors"
	"fmt"
	"smartoffice/pkg/logger"
	"smartoffice/pkg/model"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type AssetValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAssetValidator(log *logger.Logger) *AssetValidator {
	v := validator.New()
	v.RegisterStructValidation(validateHolderConsistency, model.Asset{})

	log.Info("Asset validator initialized successfully")

	return &AssetValidator{
		validate: v,
		logger:   log,
	}
}

// validateHolderConsistency enforces that a holder is recorded exactly when
// the asset is booked.
func validateHolderConsistency(sl validator.StructLevel) {
	asset := sl.Current().Interface().(model.Asset)

	if asset.IsAvailable {
		if asset.BookedBy != "" {
			sl.ReportError(asset.BookedBy, "BookedBy", "BookedBy", "holder_on_available", "")
		}
		if asset.BookedByFullName != "" {
			sl.ReportError(asset.BookedByFullName, "BookedByFullName", "BookedByFullName", "holder_on_available", "")
		}
		return
	}

	if asset.BookedBy == "" {
		sl.ReportError(asset.BookedBy, "BookedBy", "BookedBy", "holder_required", "")
	}
}

func (v *AssetValidator) Validate(asset *model.Asset) error {
	if err := v.validate.Struct(asset); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *AssetValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "holder_on_available":
			message = fmt.Sprintf("%s must be empty while the asset is available", err.Field())
		case "holder_required":
			message = fmt.Sprintf("%s is required while the asset is in use", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
