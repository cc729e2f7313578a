package mapping

import "slices"

// Merge folds the mappings a form declares for slot into the slot's
// existing mappings and returns the new list. Neither input is modified.
//
// Existing rules come first in their original order; a rule the form also
// declares gains the form's condition. Declared rules without an existing
// counterpart follow in declaration order, each with a single condition.
func Merge(existing, declared []Rule, form, slot string) []Rule {
	scope := FormCondition(form)
	pending := slices.Clone(declared)
	merged := make([]Rule, 0, len(existing)+len(declared))

	for _, rule := range existing {
		i := slices.IndexFunc(pending, rule.Equivalent)
		if i < 0 {
			merged = append(merged, NewRule(rule.fields))
			continue
		}

		pending = slices.Delete(pending, i, i+1)
		merged = append(merged, rule.WithCondition(Qualify(scope, rule, slot)))
	}

	for _, rule := range pending {
		added := rule.WithConditions(Qualify(scope, rule, slot))

		// A form listing the same mapping twice yields one entry.
		if slices.ContainsFunc(merged, added.Equal) {
			continue
		}

		merged = append(merged, added)
	}

	return merged
}
