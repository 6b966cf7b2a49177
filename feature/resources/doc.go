// Package resources exposes the resource manager over the admin API.
//
// # HTTP Endpoints
//
//   - GET /resources : Lists cached resources.
//   - POST /resources : Loads a resource by raw id or pack location and pins it.
//   - GET /resources/status : Cache size, pause state, kinds and driver stats.
//   - GET /resources/:id : Describes one cached resource.
//   - DELETE /resources/:id : Drops the pin on a resource.
//   - POST /resources/pause, /resume : Simulate a driver context loss and recovery.
//   - POST /resources/flush : Loads dirty resources into the driver.
//   - POST /resources/cleanup : Evicts unreferenced resources.
//
// Pinned resources are owned by the "admin" scene entity, so they follow the
// same reference counting as any other owner.
package resources
