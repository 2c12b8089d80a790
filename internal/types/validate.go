package types

import (
	"slices"

	"github.com/go-playground/validator/v10"
)

// Option lists shared by validation and by the wizard's choice prompts.
var (
	ClassLevels      = []string{"10th Grade", "12th Grade", "Undergraduate", "Postgraduate"}
	Streams          = []string{"science", "commerce", "arts", "other"}
	Budgets          = []string{"Under 1 lakh", "1-2 lakhs", "2-5 lakhs", "5-10 lakhs", "Above 10 lakhs"}
	CareerTypes      = []string{"private", "government", "startup", "freelance"}
	CurrentStatuses  = []string{"employed", "unemployed", "freelancing", "entrepreneur", "career-break"}
	ExperienceLevels = []string{"0-1 years", "1-3 years", "3-5 years", "5-10 years", "10+ years"}
	Proficiencies    = []Proficiency{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert}
	Difficulties     = []string{"easy", "medium", "hard"}
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	mustRegister(v, "class_level", func(fl validator.FieldLevel) bool {
		return slices.Contains(ClassLevels, fl.Field().String())
	})
	mustRegister(v, "budget", func(fl validator.FieldLevel) bool {
		return slices.Contains(Budgets, fl.Field().String())
	})
	mustRegister(v, "experience_level", func(fl validator.FieldLevel) bool {
		return slices.Contains(ExperienceLevels, fl.Field().String())
	})
	mustRegister(v, "proficiency", func(fl validator.FieldLevel) bool {
		return slices.Contains(Proficiencies, Proficiency(fl.Field().String()))
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("failed to register validation " + tag + ": " + err.Error())
	}
}

// ValidateStruct runs tag validation on any request type in this package.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
