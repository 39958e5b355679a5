// Package installer turns one install entry into filesystem effects.
//
// Plan resolves the destination directory and the placement list without
// touching the filesystem. Apply then performs the plan according to the
// run mode:
//
//   - install creates the directory and one symlink per placement, skipping
//     any destination that already exists (broken symlinks included)
//   - uninstall removes only symlinks that point at the expected source
//   - dry-run reports what install would do without mutating anything
//
// Failures are recorded per placement and never abort the entry.
package installer
