// Package shell is the boundary through which pre/post hooks and entry
// conditions reach a real shell. Everything above it talks to the Runner
// interface so tests can substitute a recording stub.
//
// Command strings run with the invoking user's full privileges. They are
// executed as written; nothing here sandboxes or inspects them.
package shell
