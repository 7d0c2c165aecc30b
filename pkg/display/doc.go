// Package display defines the editor contracts shared by content parts and
// fields: edit views, model binders, driver interfaces and a Manager that
// builds, updates and renders editors for a content item.
//
// Drivers never persist anything beyond the item or builder they are handed.
// A nil *EditView with a nil error means the driver has nothing to show.
package display
