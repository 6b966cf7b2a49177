// Package kinds implements the built-in resource kinds: textures (decoded
// images with a generated mip chain), shaders (source text with optional
// defines) and sounds (clips kept in a driver buffer).
//
// Every kind loads from a raw source by raw id or from the expansion pack
// by location, marks itself dirty, and uploads on OnDriverLoad. Pausing
// drops the driver handle and marks the kind dirty again; resuming
// uploads it back.
package kinds
