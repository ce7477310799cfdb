// Package prompt provides lightweight prompt templates for model
// providers. A template is plain text with {{ variable }} placeholders
// plus declarations of which variables are required and which have
// defaults. Rendering validates the supplied values before substituting.
package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// variablePattern matches {{ variable }} syntax.
var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Variable declares metadata for a template variable.
type Variable struct {
	// Name is the placeholder name used in the template body.
	Name string

	// Required marks the variable as mandatory at render time.
	// A required variable with a Default is never missing.
	Required bool

	// Default is substituted when no value is supplied.
	Default string

	// Description documents the variable for template authors.
	Description string
}

// Template is a parsed prompt template.
type Template struct {
	body string
	vars map[string]Variable
}

// New parses a template body and attaches variable declarations.
// Placeholders found in the body but not declared become optional
// string variables with no default.
func New(body string, vars ...Variable) *Template {
	t := &Template{
		body: body,
		vars: make(map[string]Variable, len(vars)),
	}
	for _, v := range vars {
		t.vars[v.Name] = v
	}
	for _, match := range variablePattern.FindAllStringSubmatch(body, -1) {
		name := match[1]
		if _, ok := t.vars[name]; !ok {
			t.vars[name] = Variable{Name: name}
		}
	}
	return t
}

// VariableNames returns the names of all variables the template knows
// about, declared or discovered. The order is not guaranteed.
func (t *Template) VariableNames() []string {
	names := make([]string, 0, len(t.vars))
	for name := range t.vars {
		names = append(names, name)
	}
	return names
}

// Render substitutes values into the template.
//
// Missing values fall back to the variable's default; a required
// variable with neither a value nor a default yields ValidationErrors.
// Unknown keys in values are ignored.
func (t *Template) Render(values map[string]string) (string, error) {
	var errs ValidationErrors

	resolved := make(map[string]string, len(t.vars))
	for name, v := range t.vars {
		if val, ok := values[name]; ok {
			resolved[name] = val
			continue
		}
		if v.Default != "" {
			resolved[name] = v.Default
			continue
		}
		if v.Required {
			errs = append(errs, ValidationError{
				Field:   name,
				Message: "required variable not provided",
			})
			continue
		}
		resolved[name] = ""
	}

	if len(errs) > 0 {
		return "", errs
	}

	out := variablePattern.ReplaceAllStringFunc(t.body, func(match string) string {
		name := variablePattern.FindStringSubmatch(match)[1]
		return resolved[name]
	})
	return out, nil
}

// MustRender is Render for templates whose variables are all satisfied
// statically; it panics on validation failure.
func (t *Template) MustRender(values map[string]string) string {
	out, err := t.Render(values)
	if err != nil {
		panic(fmt.Sprintf("prompt: render failed: %v", err))
	}
	return out
}

// ValidationError represents a template validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("validation errors:")
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}
