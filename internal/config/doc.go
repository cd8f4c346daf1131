// Package config defines the format-agnostic profile model for the
// application, along with the Loader interface for reading it from various
// sources.
//
// A profile selects, per category, which registered extension id should be
// the default, plus logger settings. Concrete Loader implementations, such
// as for HCL and YAML, are provided in separate packages. A profile only
// selects among compiled-in extensions; no code is ever loaded from disk.
package config
