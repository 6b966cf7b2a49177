// Package scene groups resource owners into named entities.
//
// An Entity is the resource.Owner handed to the manager: every reference
// the manager counts for it is recorded, and destroying the entity gives
// each one back. Releasing the last reference makes the resource eligible
// for the next cleanup pass.
package scene
