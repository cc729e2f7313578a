// Package yamldoc reads and writes YAML documents as insertion-ordered
// mappings.
//
// Domain files are edited by people, so a migrated file has to keep the
// key order the author chose. Decoding into map[string]any loses that
// order; this package decodes through yaml.Node instead and keeps every
// mapping as a *Map.
//
// # Values
//
// A decoded document only contains these value types:
//
//   - nil, bool, int, float64, string (and the other scalars yaml.v3
//     resolves, such as time.Time)
//   - []any for sequences
//   - *Map for mappings
//
// Quoted is a string that is always written double-quoted. It exists for
// values whose quoting is significant, such as the domain format version
// `"3.0"`.
//
// Anchors and aliases are resolved while decoding; merge keys (`<<`) are
// expanded into the surrounding mapping.
package yamldoc
