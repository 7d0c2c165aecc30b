// Package security carries the caller's principal on a context.Context and
// defines permissions, including the per-content-type permissions derived
// from templates such as EditOwn_{0}. Evaluating permissions against stored
// role grants is the host's job; Authorizer is the seam for it.
package security
