package api

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	jsonTagName  = "json"
	uriTagName   = "uri"
	emptyTagName = "-"
	subString    = 2
)

// slugRegex matches a repository slug of two or more segments, gitlab subgroups included.
var slugRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+(/[A-Za-z0-9_.-]+)+$`)

// configureValidator configure the struct validator
func configureValidator(validate *validator.Validate) error {
	eng := en.New()
	uni := ut.New(eng, eng)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return err
	}
	if err := validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	validate.RegisterTagNameFunc(fieldName)
	return nil
}

// fieldName reports fields by their json or uri name.
func fieldName(fld reflect.StructField) string {
	for _, tagName := range []string{jsonTagName, uriTagName} {
		tag := fld.Tag.Get(tagName)
		if tag == "" {
			continue
		}
		name := strings.SplitN(tag, ",", subString)[0]
		if name == emptyTagName {
			return fld.Name
		}
		return name
	}
	return fld.Name
}
