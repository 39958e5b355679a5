// Package testutil provides utilities for testing cuepine components.
//
// Key components:
//   - TestEnvironment: temp project root and fake home, with HOME and XDG
//     variables pointed inside the test's temp directory
//   - WriteTree / Snapshot: declarative file trees and link-aware snapshots
//     for before/after comparisons
//   - RecordingRunner / MockRunner: shell.Runner stand-ins so no test needs
//     a real shell to exercise hooks and conditions
//
// All test data should be defined inline, not in external files.
package testutil
