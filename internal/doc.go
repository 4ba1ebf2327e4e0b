// Package internal contains the core implementation packages for monoforge.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the monoforge CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - assembler: Monorepo orchestration, root config files, and workspace wiring
//   - config: Option management, environment bindings, and name validation
//   - errors: Structured error types with codes and suggestion support
//   - inject: Regex-anchored source injection for ORM and UI demo code
//   - logging: Structured logging built on log/slog
//   - orm: Database package generation and docker compose output
//   - registry: Template catalog and bracket-notation resolution
//   - scaffolding: Template materialization and placeholder substitution
//
// # Design Principles
//
// All internal packages follow these design principles:
//
//   - Validate user input before touching the filesystem
//   - Fail fast with structured, user-facing error messages
//   - Keep generated output deterministic for a given set of options
//   - Testability with package-level unit and property test coverage
//
// # Inter-Package Communication
//
// The assembler coordinates everything: it resolves name inputs through the
// registry, materializes templates through scaffolding, runs the inject
// passes on app entrypoints, and delegates database artifacts to orm. The
// cmd package only ever talks to config, registry and assembler.
package internal
