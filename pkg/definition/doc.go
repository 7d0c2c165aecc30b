// Package definition describes the content schema owned by the host: content
// type definitions, the parts attached to them, and the fields declared on
// parts. Definitions are plain values; hosts mutate them through the builders
// handed to AlterPartDefinition/AlterTypeDefinition callbacks.
//
// Hosts expose one of two manager shapes. The context-aware shape
// (TypeDefinitionReader, PartDefinitionAlterer, TypeDefinitionAlterer) is the
// current contract; the legacy synchronous shape (LegacyTypeDefinitionReader,
// LegacyPartDefinitionAlterer, LegacyTypeDefinitionAlterer) is kept for older
// hosts. Consumers should not probe for either shape themselves; see
// package compat.
package definition
