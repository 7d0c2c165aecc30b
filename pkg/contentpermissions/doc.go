// Package contentpermissions restricts who may view a content item. Items
// carry a ContentPermissionsPart listing the roles allowed to see them; the
// Service evaluates that list against the principal on the request context.
//
// The package also ships the part's data migration, its editor, and an HTTP
// guard that turns a denied evaluation into a 403 or a redirect.
package contentpermissions
