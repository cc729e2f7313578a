// Package cli implements the domain-migrate command tree.
package cli
