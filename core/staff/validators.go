package staff

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/quillhq/newsroom/core"
)

var (
	validate *validator.Validate

	staffGroupTag  = "staffgroup"
	staffGroupText = "invalid staff group"

	roleTypeTag  = "roletype"
	roleTypeText = "invalid role type"
)

// InitValidators registers this package's custom validators and translations.
func InitValidators(v *validator.Validate, translator ut.Translator) {
	validate = v

	_ = validate.RegisterValidation(staffGroupTag, oneOfValidation(AllGroups))
	core.RegisterCustomTranslation(validate, translator, staffGroupTag, staffGroupText)

	_ = validate.RegisterValidation(roleTypeTag, oneOfValidation(AllRoleTypes))
	core.RegisterCustomTranslation(validate, translator, roleTypeTag, roleTypeText)
}

func oneOfValidation(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, a := range allowed {
			if val == a {
				return true
			}
		}
		return false
	}
}
