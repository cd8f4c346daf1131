// Package app wires the application together: it builds the logger, loads
// the user profile, creates and populates the extension registry from the
// compiled-in modules, applies the profile's default selections and
// validates the result. The registry is owned by the App instance; nothing
// in the process holds it as a global.
package app
