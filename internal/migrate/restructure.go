package migrate

import (
	"github.com/juju/errors"

	"domain-migrator/internal/domain"
	"domain-migrator/internal/mapping"
	"domain-migrator/internal/yamldoc"
)

// Restructure moves the mappings declared by every form in doc onto the
// slots. It returns the migrated form table, where each form only lists
// its ignored intents and required slot names, and the slot table seeded
// from doc's slots with the merged mappings. doc is not modified.
//
// A slot a form requests that is missing from the slots section is added
// with only a mappings key.
func Restructure(doc *yamldoc.Map) (forms, slots *yamldoc.Map, err error) {
	legacySlots, err := domain.Section(doc, domain.KeySlots)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	legacyForms, err := domain.Section(doc, domain.KeyForms)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	slots = legacySlots.Clone()
	forms = yamldoc.NewMap()

	for _, formName := range legacyForms.Keys() {
		form, err := restructureForm(legacyForms, formName, slots)
		if err != nil {
			return nil, nil, errors.Annotatef(err, "form %q", formName)
		}

		forms.Set(formName, form)
	}

	return forms, slots, nil
}

// restructureForm merges one form's declarations into slots and returns
// the migrated form.
func restructureForm(legacyForms *yamldoc.Map, formName string, slots *yamldoc.Map) (*yamldoc.Map, error) {
	form, err := domain.Entry(legacyForms, "form", formName)
	if err != nil {
		return nil, errors.Trace(err)
	}

	declarations, ignoredIntents, err := formDeclarations(form)
	if err != nil {
		return nil, errors.Trace(err)
	}

	required := make([]any, 0, declarations.Len())

	for _, slotName := range declarations.Keys() {
		v, _ := declarations.Get(slotName)

		declared, err := mapping.ParseRules(v)
		if err != nil {
			return nil, errors.Annotatef(err, "slot %q", slotName)
		}

		slot, err := domain.Entry(slots, "slot", slotName)
		if err != nil {
			return nil, errors.Trace(err)
		}

		existingValue, _ := slot.Get(domain.KeyMappings)

		existing, err := mapping.ParseRules(existingValue)
		if err != nil {
			return nil, errors.Annotatef(err, "slot %q", slotName)
		}

		merged := mapping.Merge(existing, declared, formName, slotName)
		if logger.IsTraceEnabled() {
			for _, rule := range merged {
				logger.Tracef("form %q: slot %q maps %s", formName, slotName, rule)
			}
		}

		slot.Set(domain.KeyMappings, mapping.List(merged))
		slots.Set(slotName, slot)

		required = append(required, slotName)
	}

	return yamldoc.MapOf(
		domain.KeyIgnoredIntents, ignoredIntents,
		domain.KeyRequiredSlots, required,
	), nil
}

// formDeclarations splits a 2.0 form into its slot declarations and its
// ignored intents. Declarations are either the form's own keys or nested
// one level under required_slots.
func formDeclarations(form *yamldoc.Map) (*yamldoc.Map, any, error) {
	declarations := form.Clone()

	ignoredIntents, _ := declarations.Get(domain.KeyIgnoredIntents)
	declarations.Delete(domain.KeyIgnoredIntents)

	if ignoredIntents == nil {
		ignoredIntents = []any{}
	}

	if declarations.Has(domain.KeyRequiredSlots) {
		nested, err := domain.Entry(declarations, "form section", domain.KeyRequiredSlots)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}

		declarations = nested
	}

	return declarations, ignoredIntents, nil
}
