// Package source provides the raw storage side of resource loading: the
// bytes a resource reads in OnStorageLoad before anything reaches the driver.
//
// Storage resolves raw ids through the asset catalog and streams the object
// from the bucket. ReadAll and ReadString work with any resource.Source.
package source
