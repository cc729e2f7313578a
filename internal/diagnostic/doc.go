// Package diagnostic collects warnings and notes produced while migrating
// a domain.
//
// Migration code never prints. It records what a human should look at
// (a placeholder mapping that was added, an output directory that was
// created) and returns the records with its result, leaving rendering to
// the caller.
package diagnostic
