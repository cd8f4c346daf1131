// Package extension provides the central extension registry.
//
// The Registry is responsible for storing named extension points
// ("categories") and the pluggable implementations ("extensions") registered
// under them. A category may require one or more structural interfaces; an
// extension that does not expose every required method is rejected at
// registration time. Each category tracks a selected default extension and,
// when created in single-instance mode, caches one shared instance of it.
//
// During application startup the registry is populated by compiled-in
// modules and then validated, so that a mismatch between a category's
// contract and its registered extensions is caught before the host ever
// resolves one.
package extension
