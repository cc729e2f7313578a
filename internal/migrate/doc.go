// Package migrate converts 2.0 domain files to the 3.0 format.
//
// The conversion moves slot mappings from forms onto the slots
// themselves:
//
//  1. Restructure walks every form, merges the mappings it declares into
//     the slot table (see mapping.Merge) and reduces the form to its
//     ignored intents and the names of its required slots.
//  2. Normalize turns the implicit auto_fill behaviour into an explicit
//     from_entity mapping and gives every slot without mappings a custom
//     placeholder.
//  3. Assemble splices the new slot and form tables back into each
//     original document in place and sets the version marker.
//
// Migrator drives these steps over a single file or a directory of domain
// files. A run either completes (backup kept, every output written) or is
// rolled back so that no backup or output of that run remains.
package migrate
