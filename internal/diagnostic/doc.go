// Package diagnostic provides structured warnings and errors reported while
// checking a recipe before its bindings are resolved.
//
// Key capabilities:
//   - Duplicate or empty component ids
//   - Embedding cycles between components
//   - Externs naming components missing from the recipe
//   - Inputs bound to identifiers that are not declared state
//   - Declared variables nothing reads (info)
package diagnostic
