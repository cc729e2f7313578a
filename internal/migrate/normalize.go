package migrate

import (
	"fmt"
	"slices"

	"github.com/juju/errors"

	"domain-migrator/internal/diagnostic"
	"domain-migrator/internal/domain"
	"domain-migrator/internal/mapping"
	"domain-migrator/internal/yamldoc"
)

// Diagnostic codes recorded by the migration.
const (
	CodeCustomMappingAdded     = "custom_mapping_added"
	CodeOutputDirectoryCreated = "output_directory_created"
)

// Normalize makes implicit slot filling explicit. A slot named like an
// entity of doc that does not opt out with auto_fill: false gets a
// from_entity mapping for that entity, unless one (conditional or not)
// is already there; auto_fill is dropped from every slot. A slot left
// without any mapping gets a custom placeholder and a warning. The
// returned table is new; slots is not modified.
func Normalize(doc, slots *yamldoc.Map) (*yamldoc.Map, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	rawEntities, err := domain.RawEntities(doc)
	if err != nil {
		return nil, diags, errors.Trace(err)
	}

	entities := domain.EntityNames(rawEntities)
	normalized := yamldoc.NewMap()

	for _, name := range slots.Keys() {
		slot, err := domain.Entry(slots, "slot", name)
		if err != nil {
			return nil, diags, errors.Trace(err)
		}

		slot = slot.Clone()

		mappingsValue, _ := slot.Get(domain.KeyMappings)

		rules, err := mapping.ParseRules(mappingsValue)
		if err != nil {
			return nil, diags, errors.Annotatef(err, "slot %q", name)
		}

		if slices.Contains(entities, name) && autoFills(slot) && !readsEntity(rules, name) {
			rules = append(rules, mapping.EntityRule(name))
			slot.Set(domain.KeyMappings, mapping.List(rules))
		}

		slot.Delete(domain.KeyAutoFill)

		if len(rules) == 0 {
			slot.Set(domain.KeyMappings, mapping.List([]mapping.Rule{mapping.CustomRule()}))
			diags.AddWarning(
				CodeCustomMappingAdded,
				fmt.Sprintf("A custom mapping was added to slot '%s'. Please double-check this is correct.", name),
				"",
				domain.KeySlots+"."+name,
			)
		}

		normalized.Set(name, slot)
	}

	return normalized, diags, nil
}

// autoFills reports whether a 2.0 slot was filled automatically: auto_fill
// defaults to true and only an explicit true keeps it on.
func autoFills(slot *yamldoc.Map) bool {
	v, ok := slot.Get(domain.KeyAutoFill)
	if !ok {
		return true
	}

	b, isBool := v.(bool)

	return isBool && b
}

func readsEntity(rules []mapping.Rule, entity string) bool {
	return slices.ContainsFunc(rules, func(r mapping.Rule) bool {
		return r.Type() == mapping.FromEntity && r.Entity() == entity
	})
}
