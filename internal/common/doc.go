// Package common holds small generic helpers shared by the migrator
// packages.
package common
