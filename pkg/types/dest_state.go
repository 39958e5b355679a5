package types

// DestKind classifies what currently occupies a destination path
type DestKind int

const (
	// DestAbsent means nothing exists at the path, not even a broken symlink
	DestAbsent DestKind = iota
	// DestSymlink means a symlink exists, whether or not its target does
	DestSymlink
	// DestOther means a regular file, directory or other non-link entry exists
	DestOther
)

func (k DestKind) String() string {
	switch k {
	case DestAbsent:
		return "absent"
	case DestSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// DestState is the link-aware state of a destination path
type DestState struct {
	Kind DestKind
	// LinkTarget is the raw symlink target when Kind is DestSymlink
	LinkTarget string
	// TargetExists reports whether the symlink target resolves
	TargetExists bool
}

// Exists reports whether anything, including a broken symlink, occupies the path
func (s DestState) Exists() bool {
	return s.Kind != DestAbsent
}
