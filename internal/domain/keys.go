package domain

// Top-level sections of a domain file.
const (
	KeyVersion       = "version"
	KeyIntents       = "intents"
	KeyEntities      = "entities"
	KeySlots         = "slots"
	KeyForms         = "forms"
	KeyActions       = "actions"
	KeyResponses     = "responses"
	KeyE2EActions    = "e2e_actions"
	KeySessionConfig = "session_config"
)

// Keys inside slot and form definitions.
const (
	KeyMappings       = "mappings"
	KeyAutoFill       = "auto_fill"
	KeyRequiredSlots  = "required_slots"
	KeyIgnoredIntents = "ignored_intents"
)

// TargetVersion is the domain format the migrator produces.
const TargetVersion = "3.0"

// DefaultDomainPath is the conventional name of a single-file domain.
const DefaultDomainPath = "domain.yml"

// AllKeys lists the sections whose presence marks a YAML file as a domain
// file.
var AllKeys = []string{
	KeySlots,
	KeyForms,
	KeyActions,
	KeyEntities,
	KeyIntents,
	KeyResponses,
	KeyE2EActions,
	KeySessionConfig,
}
