package mapping

import "domain-migrator/internal/yamldoc"

// Condition scopes a mapping to a conversation state, e.g. a specific
// active form and requested slot.
type Condition struct {
	fields *yamldoc.Map
}

// FormCondition applies while the named form is the active loop.
func FormCondition(form string) Condition {
	return Condition{fields: yamldoc.MapOf(KeyActiveLoop, form)}
}

// WithRequestedSlot returns a copy that also requires slot to be the
// requested slot.
func (c Condition) WithRequestedSlot(slot string) Condition {
	fields := c.fields.Clone()
	fields.Set(KeyRequestedSlot, slot)

	return Condition{fields: fields}
}

// ActiveLoop returns the form the condition is scoped to, or "".
func (c Condition) ActiveLoop() string {
	v, _ := c.fields.Get(KeyActiveLoop)
	s, _ := v.(string)

	return s
}

// RequestedSlot returns the requested_slot qualifier, or "".
func (c Condition) RequestedSlot() string {
	v, _ := c.fields.Get(KeyRequestedSlot)
	s, _ := v.(string)

	return s
}

// String renders the scope as "form" or "form/slot".
func (c Condition) String() string {
	if slot := c.RequestedSlot(); slot != "" {
		return c.ActiveLoop() + "/" + slot
	}

	return c.ActiveLoop()
}

// Equal reports whether both conditions have the same key/value pairs.
func (c Condition) Equal(other Condition) bool {
	return c.fields.Equal(other.fields)
}

// Map returns a copy of the condition for serialization.
func (c Condition) Map() *yamldoc.Map {
	return c.fields.Clone()
}

// Qualify returns the condition a form contributes to rule on slot.
// from_entity and from_trigger_intent mappings keep the bare form scope;
// every other type is also pinned to the slot being requested.
func Qualify(scope Condition, rule Rule, slot string) Condition {
	switch rule.Type() {
	case FromEntity, FromTriggerIntent:
		return scope
	default:
		return scope.WithRequestedSlot(slot)
	}
}
