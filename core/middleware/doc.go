// Package middleware groups the Fiber middleware of the admin API.
//
//   - auth: API key validation through the X-API-Key header.
//   - rayid: tags each request with a ray id for log correlation.
package middleware
