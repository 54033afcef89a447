package service

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError maps form fields to the message shown next to them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

type validator struct {
	fields map[string]string
}

func (v *validator) fail(field, msg string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, ok := v.fields[field]; !ok {
		v.fields[field] = msg
	}
}

func (v *validator) required(field, value, msg string) bool {
	if strings.TrimSpace(value) == "" {
		v.fail(field, msg)
		return false
	}
	return true
}

func (v *validator) email(field, value string) {
	if !v.required(field, value, "Required") {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v.fail(field, "Invalid email address")
		return
	}
	domain := value[strings.LastIndex(value, "@")+1:]
	if !strings.Contains(domain, ".") {
		v.fail(field, "Invalid email address")
	}
}

func (v *validator) password(field, value string) {
	if !v.required(field, value, "Required") {
		return
	}
	if utf8.RuneCountInString(value) < minPasswordLength {
		v.fail(field, "Password must be at least 6 characters")
	}
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
