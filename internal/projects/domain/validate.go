package domain

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Code identifies a single violated record rule.
type Code string

const (
	CodeTitleRequired         Code = "TitleRequired"
	CodeDescriptionRequired   Code = "DescriptionRequired"
	CodeStatusRequired        Code = "StatusRequired"
	CodeTechnologiesRequired  Code = "TechnologiesRequired"
	CodeTechnologiesDuplicate Code = "TechnologiesDuplicate"
	CodeGithubRequired        Code = "GithubRequired"
	CodeGithubInvalid         Code = "GithubInvalid"
)

// Field names as they appear on the wire.
const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldTechnologies = "technologies"
	FieldGithub       = "github"
)

var githubLinkPattern = regexp.MustCompile(`^https://(www\.)?github\.com/.+`)

// ValidationErrors maps a field to the rule it violated. At most one code per
// field; all violated fields are reported together.
type ValidationErrors map[string]Code

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+string(v[f]))
	}
	return "invalid project: " + strings.Join(parts, ", ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether code was raised for any field.
func (v ValidationErrors) Has(code Code) bool {
	for _, c := range v {
		if c == code {
			return true
		}
	}
	return false
}

type checkedDraft struct {
	Title          string       `validate:"required"`
	Description    string       `validate:"required"`
	Status         Status       `validate:"required,oneof=Finished InProgress"`
	Technologies   Technologies `validate:"min=1,unique"`
	RepositoryLink string       `validate:"required,githublink"`
}

// field name -> tag -> code
var codes = map[string]map[string]Code{
	"Title":          {"required": CodeTitleRequired},
	"Description":    {"required": CodeDescriptionRequired},
	"Status":         {"required": CodeStatusRequired, "oneof": CodeStatusRequired},
	"Technologies":   {"min": CodeTechnologiesRequired, "unique": CodeTechnologiesDuplicate},
	"RepositoryLink": {"required": CodeGithubRequired, "githublink": CodeGithubInvalid},
}

var wireNames = map[string]string{
	"Title":          FieldTitle,
	"Description":    FieldDescription,
	"Status":         FieldStatus,
	"Technologies":   FieldTechnologies,
	"RepositoryLink": FieldGithub,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("githublink", func(fl validator.FieldLevel) bool {
		return githubLinkPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks every rule independently and returns the violations,
// or nil when the draft is savable.
func Validate(d Draft) ValidationErrors {
	f := d.Normalize()
	err := validate.Struct(checkedDraft{
		Title:          f.Title,
		Description:    f.Description,
		Status:         f.Status,
		Technologies:   f.Technologies,
		RepositoryLink: f.RepositoryLink,
	})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"": Code(err.Error())}
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		code, ok := codes[fe.StructField()][fe.Tag()]
		if !ok {
			continue
		}
		out[wireNames[fe.StructField()]] = code
	}
	return out
}

// IsGithubLink reports whether link points into GitHub's web interface.
func IsGithubLink(link string) bool {
	return githubLinkPattern.MatchString(strings.TrimSpace(link))
}
