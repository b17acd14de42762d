package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewAuthValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("display_name", displayNameValidator),
		},
	}
}

func NewMemberValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("member_role", memberRoleValidator),
		},
	}
}

func NewProjectValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("display_name", displayNameValidator),
		},
	}
}

func NewTestCaseValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("display_name", displayNameValidator),
		},
	}
}
