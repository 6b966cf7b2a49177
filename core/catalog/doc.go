// Package catalog maps raw resource ids to storage objects.
//
// Resources requested by raw id (WithRawID) are looked up in the `assets`
// table to find the object key in the bucket and the expected kind.
// Lookups are memoized and protected against stampedes with singleflight.
package catalog
