// Package domain names the parts of a domain file and reads them out of a
// decoded document.
package domain
