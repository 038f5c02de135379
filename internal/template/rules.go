package template

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NonEmptyString accepts non-blank string values. It is the default rule
// for free-text front matter labels such as layout, title, and subtitle.
var NonEmptyString validation.Rule = validation.By(func(value any) error {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return validation.NewError(
			"lessonlint.front_matter.non_empty",
			"must be a non-empty string")
	}
	return nil
})

// NumericString accepts values that represent a number, either as a YAML
// scalar or as numeric text (e.g. minutes: 15 or minutes: "15").
var NumericString validation.Rule = validation.By(func(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return nil
	case string:
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return nil
		}
	}
	return validation.NewError(
		"lessonlint.front_matter.numeric",
		"must be a number")
})
