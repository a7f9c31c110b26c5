// Package typekit is a collection of small, independent helper packages.
//
//   - pkg/typeparam: instantiate the type bound to a position of a generic base
//   - pkg/serial: encode object graphs and decode them through an injected type context
//   - pkg/config: typed configuration from environment variables and dotenv files
//   - pkg/logger: slog construction with functional options and shared attribute keys
//
// Packages do not depend on each other unless noted in their documentation.
package typekit
