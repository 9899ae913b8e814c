package prefs

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"whiskplan/internal/domain"
)

// validatedSettings flattens the fields subject to validation so the rules
// live in one place as struct tags.
type validatedSettings struct {
	ServingSize     int     `validate:"min=1,max=12"`
	WeeklyBudget    float64 `validate:"gt=0"`
	PricePerServing float64 `validate:"gt=0"`
	Currency        string  `validate:"len=3,alpha"`
}

// violationMessages maps validated fields to the messages shown to the user.
// Fields without an entry fall back to the translator's generic message.
var violationMessages = map[string]string{
	"ServingSize":     "Serving size must be between 1 and 12",
	"WeeklyBudget":    "Weekly budget must be greater than 0",
	"PricePerServing": "Price per serving must be greater than 0",
	"Currency":        "Currency must be a valid 3-letter code",
}

type settingsValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newSettingsValidator() *settingsValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	eng := en.New()
	uni := ut.New(eng, eng)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)

	return &settingsValidator{validate: validate, trans: trans}
}

// check returns one message per violated field.
func (v *settingsValidator) check(prefs domain.Preferences, budget domain.BudgetSettings) []string {
	settings := validatedSettings{
		ServingSize:     prefs.ServingSize,
		WeeklyBudget:    budget.WeeklyBudget,
		PricePerServing: budget.PricePerServing,
		Currency:        budget.Currency,
	}

	err := v.validate.Struct(settings)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	seen := make(map[string]bool)
	for _, fieldErr := range errs {
		msg, ok := violationMessages[fieldErr.Field()]
		if !ok {
			msg = fieldErr.Translate(v.trans)
		}
		if !seen[msg] {
			seen[msg] = true
			messages = append(messages, msg)
		}
	}
	return messages
}
