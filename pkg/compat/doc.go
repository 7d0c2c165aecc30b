// Package compat resolves which definition-manager shape a host exposes and
// presents it through the context-aware definition.Manager contract.
//
// Capabilities are probed once, in New, with interface assertions. Every
// operation is resolved in the same order: the context-aware method first,
// then the legacy synchronous one. Reads on a host that exposes neither fail
// with an *UnsupportedError. Mutations fail the same way in ModeStrict and
// become logged no-ops in ModeBestEffort, which exists for hosts that are
// part-way through a migration.
package compat
