// Package utils provides small conversion helpers for the loosely typed
// init data passed to resource loads (for example values decoded from JSON
// or query strings).
package utils
