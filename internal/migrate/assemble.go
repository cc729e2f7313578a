package migrate

import (
	"domain-migrator/internal/domain"
	"domain-migrator/internal/yamldoc"
)

// Assemble rebuilds original with the migrated tables. Keys keep their
// order: slots and forms are replaced by the given tables, version is set
// to the target marker, every other key is copied unchanged. A table is
// only written where original has the key.
func Assemble(original, forms, slots *yamldoc.Map) *yamldoc.Map {
	out := yamldoc.NewMap()

	original.Each(func(key string, value any) {
		switch key {
		case domain.KeySlots:
			out.Set(key, slots.Clone())
		case domain.KeyForms:
			out.Set(key, forms.Clone())
		case domain.KeyVersion:
			out.Set(key, targetVersion())
		default:
			out.Set(key, yamldoc.CloneValue(value))
		}
	})

	return out
}

// BumpVersion returns a copy of doc that declares the target version. The
// version key keeps its position, or is appended if doc has none.
func BumpVersion(doc *yamldoc.Map) *yamldoc.Map {
	out := doc.Clone()
	if out == nil {
		out = yamldoc.NewMap()
	}

	out.Set(domain.KeyVersion, targetVersion())

	return out
}

func targetVersion() yamldoc.Quoted {
	return yamldoc.Quoted(domain.TargetVersion)
}
