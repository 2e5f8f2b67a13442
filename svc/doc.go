// Package svc applies the domain rules for projects and users on top of the
// store layer: default-document construction, update-payload validation,
// username uniqueness, password hashing and login token issuance.
//
// The store layer reports "nothing was modified" as a zero count, not an
// error. Services promote that to an error, because their contract promises
// the caller that a referenced document exists. Every failure is wrapped
// with the operation attempted and the affected identifier, preserving the
// underlying cause.
package svc
