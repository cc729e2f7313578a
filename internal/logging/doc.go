// Package logging configures the loggo writers and levels used by the
// migrator packages.
package logging
