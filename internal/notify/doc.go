// Package notify plans change-notification wiring from resolved bindings.
//
// Text and input children are rebuilt when any getter they read changes.
// A child reading a single getter listens to that notifier directly; a child
// reading several merges them with MergeAny, rebuilding on any change.
//
// Extern properties bound to a declared variable are wired live: the
// embedding component owns the notifier and updates the variable itself.
// Properties bound to another property are forwarded to the embedder, through
// every owner recorded in the augmented redirection table.
package notify
