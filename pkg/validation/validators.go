package validation

import (
	"errors"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"resume-analyzer-backend/internal/matcher"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("keyword_token", KeywordToken)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// RegisterGinValidators installs the custom validators on gin's binding engine.
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin binding engine is not go-playground/validator")
	}
	RegisterValidators(v)
	return nil
}

// KeywordToken accepts strings the tokenizer would produce unchanged:
// a single lowercase run of letters and digits.
func KeywordToken(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	tokens := matcher.Tokenize(val)
	return len(tokens) == 1 && tokens[0] == val
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol, other / Symbol, modifier
			return false
		}
	}
	return true
}
