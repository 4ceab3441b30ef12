// Package contract is the single source of truth for what a valid request or
// response payload looks like. Shapes are declared on the domain types via
// validate tags; cross-field rules that cannot be expressed per field are
// registered here as struct-level refinements.
package contract

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/meridiancrm/salescycle/internal/domain"
)

var validate = newValidator()

// Validator returns the configured validator shared by the whole module.
// All custom tags and struct-level refinements are registered on it.
func Validator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field paths by json name so validation errors line up with the
	// wire payload rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("enum", validEnum); err != nil {
		panic(err)
	}

	v.RegisterStructValidation(changeStageRefinement, domain.ChangeStagePayload{})

	return v
}

// validEnum accepts any field whose type knows its own closed value set
func validEnum(fl validator.FieldLevel) bool {
	if v, ok := fl.Field().Interface().(interface{ IsValid() bool }); ok {
		return v.IsValid()
	}
	return false
}

// changeStageRefinement fails a stage-change payload that targets Closed Lost
// without a non-empty loss reason
func changeStageRefinement(sl validator.StructLevel) {
	p := sl.Current().Interface().(domain.ChangeStagePayload)
	if p.Stage != domain.WireClosedLost {
		return
	}
	if p.LossReason == nil || strings.TrimSpace(*p.LossReason) == "" {
		sl.ReportError(p.LossReason, "lossReason", "LossReason", "loss_reason_required", "")
	}
}

// validationMessages provides human-readable messages for validator tags
var validationMessages = map[string]string{
	"required":             "This field is required",
	"email":                "Must be a valid email address",
	"url":                  "Must be a valid URL",
	"max":                  "Exceeds maximum length",
	"min":                  "Below minimum length",
	"len":                  "Must be exactly the specified length",
	"gte":                  "Must be greater than or equal to minimum value",
	"gt":                   "Must be greater than minimum value",
	"lte":                  "Must be less than or equal to maximum value",
	"lt":                   "Must be less than maximum value",
	"uuid":                 "Must be a valid UUID",
	"enum":                 "Must be one of the allowed values",
	"loss_reason_required": "A loss reason is required when the stage is Closed Lost",
}

func messageForTag(tag string) string {
	if msg, ok := validationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Check validates a payload against its declared shape and returns a
// *domain.ValidationError tagged with the given phase on mismatch.
// A nil return means the payload satisfies its contract.
func Check(payload any, phase domain.ValidationPhase) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-struct payload or validator misuse; still tag the phase so the
		// caller can tell it apart from a transport failure.
		return &domain.ValidationError{
			Phase:  phase,
			Fields: []domain.FieldError{{Field: "", Message: err.Error()}},
		}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: messageForTag(fe.Tag()),
		})
	}
	return &domain.ValidationError{Phase: phase, Fields: fields}
}

// fieldPath strips the root struct name from the validator namespace, so a
// nested failure reports as "lineItems[0].quantity" rather than
// "CreateProposalRequest.lineItems[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
