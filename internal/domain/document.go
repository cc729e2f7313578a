package domain

import (
	"fmt"

	"github.com/juju/errors"

	"domain-migrator/internal/yamldoc"
)

// ErrMalformed is returned when a section does not have the shape the
// domain format requires.
const ErrMalformed = errors.ConstError("domain section has the wrong shape")

// Section returns the mapping stored under key. A missing or null section
// is returned as an empty mapping.
func Section(doc *yamldoc.Map, key string) (*yamldoc.Map, error) {
	v, ok := doc.Get(key)
	if !ok || v == nil {
		return yamldoc.NewMap(), nil
	}

	m, ok := v.(*yamldoc.Map)
	if !ok {
		return nil, malformedf("%q must be a mapping, got %s", key, describe(v))
	}

	return m, nil
}

// Entry returns the mapping stored under name inside a section, such as one
// slot or one form. A null entry is an empty mapping.
func Entry(section *yamldoc.Map, kind, name string) (*yamldoc.Map, error) {
	v, _ := section.Get(name)
	if v == nil {
		return yamldoc.NewMap(), nil
	}

	m, ok := v.(*yamldoc.Map)
	if !ok {
		return nil, malformedf("%s %q must be a mapping, got %s", kind, name, describe(v))
	}

	return m, nil
}

// RawEntities returns the entities list as written. A missing or null list
// is empty.
func RawEntities(doc *yamldoc.Map) ([]any, error) {
	v, ok := doc.Get(KeyEntities)
	if !ok || v == nil {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, malformedf("%q must be a list, got %s", KeyEntities, describe(v))
	}

	return items, nil
}

// EntityNames returns the names of the declared entities. Entities are
// either plain names or single-key mappings carrying roles and groups.
func EntityNames(entities []any) []string {
	names := make([]string, 0, len(entities))

	for _, e := range entities {
		switch v := e.(type) {
		case string:
			names = append(names, v)
		case *yamldoc.Map:
			if v.Len() == 1 {
				names = append(names, v.Keys()[0])
			}
		}
	}

	return names
}

// Version returns the version marker as a string, if the document has one.
func Version(doc *yamldoc.Map) (string, bool) {
	v, ok := doc.Get(KeyVersion)
	if !ok {
		return "", false
	}

	switch s := v.(type) {
	case string:
		return s, true
	case yamldoc.Quoted:
		return string(s), true
	default:
		return fmt.Sprint(v), true
	}
}

// IsMigrated reports whether doc already declares the target version. Only
// a string marker counts; a bare number such as 3.0 is not the target.
func IsMigrated(doc *yamldoc.Map) bool {
	v, ok := Version(doc)

	return ok && v == TargetVersion
}

// HasSlotsOrForms reports whether doc declares a slots or a forms section.
func HasSlotsOrForms(doc *yamldoc.Map) bool {
	return doc.Has(KeySlots) || doc.Has(KeyForms)
}

func malformedf(format string, args ...any) error {
	return errors.WithType(errors.Errorf(format, args...), ErrMalformed)
}

func describe(v any) string {
	switch v.(type) {
	case *yamldoc.Map:
		return "a mapping"
	case []any:
		return "a list"
	case string, yamldoc.Quoted:
		return "a string"
	default:
		return fmt.Sprintf("%T", v)
	}
}
