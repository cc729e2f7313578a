package mapping

import (
	"fmt"
	"strings"

	"github.com/juju/errors"

	"domain-migrator/internal/yamldoc"
)

// Mapping types the migrator treats specially. Other types are carried
// through untouched.
const (
	FromEntity        = "from_entity"
	FromText          = "from_text"
	FromIntent        = "from_intent"
	FromTriggerIntent = "from_trigger_intent"
	Custom            = "custom"
)

// Keys of a mapping entry and of its conditions.
const (
	KeyType          = "type"
	KeyEntity        = "entity"
	KeyConditions    = "conditions"
	KeyActiveLoop    = "active_loop"
	KeyRequestedSlot = "requested_slot"
)

// ErrMalformed is returned when a mappings list does not have the expected
// shape.
const ErrMalformed = errors.ConstError("malformed slot mappings")

// Rule is one entry of a slot's mappings list. Rules are immutable: every
// method that changes a rule returns a new one.
type Rule struct {
	fields *yamldoc.Map
}

// NewRule wraps a copy of fields.
func NewRule(fields *yamldoc.Map) Rule {
	if fields == nil {
		return Rule{fields: yamldoc.NewMap()}
	}

	return Rule{fields: fields.Clone()}
}

// RuleOf builds a rule from alternating key/value arguments.
func RuleOf(kv ...any) Rule {
	return Rule{fields: yamldoc.MapOf(kv...)}
}

// EntityRule is the from_entity mapping for the named entity.
func EntityRule(entity string) Rule {
	return RuleOf(KeyType, FromEntity, KeyEntity, entity)
}

// CustomRule is the placeholder mapping for slots filled by custom code.
func CustomRule() Rule {
	return RuleOf(KeyType, Custom)
}

// ParseRules converts a decoded mappings list. A nil value is an empty list.
func ParseRules(v any) ([]Rule, error) {
	if v == nil {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, errors.WithType(errors.Errorf("expected a list of mappings, got %s", describe(v)), ErrMalformed)
	}

	rules := make([]Rule, 0, len(items))

	for i, item := range items {
		fields, ok := item.(*yamldoc.Map)
		if !ok {
			return nil, errors.WithType(errors.Errorf("mapping #%d: expected a mapping, got %s", i+1, describe(item)), ErrMalformed)
		}

		rules = append(rules, NewRule(fields))
	}

	return rules, nil
}

// List converts rules back into a YAML sequence.
func List(rules []Rule) []any {
	out := make([]any, len(rules))
	for i, r := range rules {
		out[i] = r.Map()
	}

	return out
}

// Type returns the mapping type, or "" if the entry has none.
func (r Rule) Type() string {
	v, _ := r.fields.Get(KeyType)
	s, _ := v.(string)

	return s
}

// Entity returns the entity a from_entity mapping reads, or "".
func (r Rule) Entity() string {
	v, _ := r.fields.Get(KeyEntity)
	s, _ := v.(string)

	return s
}

// Conditions returns the rule's conditions in order. Entries that are not
// mappings are skipped.
func (r Rule) Conditions() []Condition {
	v, _ := r.fields.Get(KeyConditions)
	items, _ := v.([]any)

	var out []Condition

	for _, item := range items {
		if m, ok := item.(*yamldoc.Map); ok {
			out = append(out, Condition{fields: m.Clone()})
		}
	}

	return out
}

// Equivalent reports whether both rules are equal once conditions are
// ignored. This is the identity used to detect a mapping shared by forms.
func (r Rule) Equivalent(other Rule) bool {
	return r.withoutConditions().Equal(other.withoutConditions())
}

// Equal reports structural equality including conditions.
func (r Rule) Equal(other Rule) bool {
	return r.fields.Equal(other.fields)
}

// WithCondition returns a copy with c appended to the conditions. The
// conditions key moves to the end of the entry. A condition that is
// already present is not added twice.
func (r Rule) WithCondition(c Condition) Rule {
	v, _ := r.fields.Get(KeyConditions)
	existing, _ := v.([]any)

	conditions := make([]any, 0, len(existing)+1)
	present := false

	for _, item := range existing {
		if yamldoc.EqualValues(item, c.fields) {
			present = true
		}

		conditions = append(conditions, yamldoc.CloneValue(item))
	}

	if !present {
		conditions = append(conditions, c.Map())
	}

	out := r.withoutConditions()
	out.fields.Set(KeyConditions, conditions)

	return out
}

// WithConditions returns a copy whose conditions are exactly cs.
func (r Rule) WithConditions(cs ...Condition) Rule {
	conditions := make([]any, len(cs))
	for i, c := range cs {
		conditions[i] = c.Map()
	}

	out := r.withoutConditions()
	out.fields.Set(KeyConditions, conditions)

	return out
}

// Map returns a copy of the entry for serialization.
func (r Rule) Map() *yamldoc.Map {
	return r.fields.Clone()
}

// String renders the rule for logs and diagnostics, e.g.
// "from_text when restaurant_form/cuisine, cafe_form/cuisine".
func (r Rule) String() string {
	s := r.Type()
	if e := r.Entity(); e != "" {
		s = fmt.Sprintf("%s(%s)", s, e)
	}

	conditions := r.Conditions()
	if len(conditions) == 0 {
		return s
	}

	scopes := make([]string, len(conditions))
	for i, c := range conditions {
		scopes[i] = c.String()
	}

	return s + " when " + strings.Join(scopes, ", ")
}

func (r Rule) withoutConditions() Rule {
	out := NewRule(r.fields)
	out.fields.Delete(KeyConditions)

	return out
}

func describe(v any) string {
	switch v.(type) {
	case *yamldoc.Map:
		return "a mapping"
	case []any:
		return "a list"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
