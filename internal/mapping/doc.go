// Package mapping models slot mappings and merges them across forms.
//
// In the 2.0 domain format a form owns the mappings of the slots it
// requests:
//
//	forms:
//	  restaurant_form:
//	    required_slots:
//	      cuisine:
//	        - type: from_entity
//	          entity: cuisine
//
// In the 3.0 format the slot owns them, and every mapping that used to
// live on a form records the form as a condition:
//
//	slots:
//	  cuisine:
//	    mappings:
//	      - type: from_entity
//	        entity: cuisine
//	        conditions:
//	          - active_loop: restaurant_form
//
// # Condition qualification
//
// from_entity and from_trigger_intent mappings keep the bare
// active_loop condition. Every other mapping type also gets a
// requested_slot qualifier naming the slot.
//
// # Merging
//
// Merge folds one form's mappings for one slot into the slot's existing
// list. A mapping already on the slot (equal ignoring conditions) gains
// the form's condition; anything else is appended with a single
// condition. Existing mappings keep their order and come first.
package mapping
