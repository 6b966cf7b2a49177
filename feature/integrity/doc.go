// Package integrity checks that the data behind the resource manager is
// consistent before it is served.
//
// # Checks Provided
//
//   - Structure: the raw source bucket holds a folder per resource kind.
//   - Catalog: every catalog row points to an object present in the bucket.
//   - Schema: the assets table matches the catalog model.
//   - Archive: every expansion pack entry decompresses.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog objects check.
//   - GET /integrity/schema : Runs catalog schema check.
//   - GET /integrity/archive : Runs expansion pack check.
package integrity
