// Package types defines the data model shared by the install engine.
//
// A ConfigDocument is the canonical, format-independent form of one discovered
// install.<ext> file. Documents are immutable once loaded: the engine only ever
// mutates the filesystem, never the parsed structures. Relative paths inside a
// document resolve against its SourceDir, and the literal token $HOME in an
// entry's Dir is substituted only when the directory is resolved for use.
//
// The package also defines the FS boundary used by discovery and placement,
// the run Mode, the planned/performed Operation records and the tri-state
// DestState returned by the link-aware destination check.
package types
