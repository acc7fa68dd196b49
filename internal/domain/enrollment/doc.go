// Package enrollment implements the domain layer for the course enrollment
// system.
//
// This package follows Domain-Driven Design (DDD) principles:
//   - Contains only pure Go code with standard library imports (no external dependencies)
//   - Defines entity types (Student, Course) with encapsulated state and behavior
//   - Implements domain logic (weekday parsing, time-range overlap, capacity rules)
//   - Has no knowledge of infrastructure concerns (file I/O, databases)
//
// # Core Types
//
// Course owns its enrollment set and capacity rules, and can evaluate
// schedule conflicts against another course. Student owns its set of
// registered course ids. An enrollment is represented redundantly in both
// entities; the Registry (internal/registry) is the only writer and keeps the
// two sides consistent.
//
// Store is the persistence interface: whole-snapshot Load/Save with a
// LoadReport describing what a tolerant load skipped. Implementations live in
// internal/infrastructure.
package enrollment
