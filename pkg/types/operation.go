package types

import "fmt"

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateDir creates a destination directory and its parents
	OperationCreateDir OperationType = "create_dir"

	// OperationCreateSymlink creates a symbolic link at Target pointing to Source
	OperationCreateSymlink OperationType = "create_symlink"

	// OperationRemoveSymlink removes the symbolic link at Target
	OperationRemoveSymlink OperationType = "remove_symlink"
)

// OperationStatus defines the state of an operation
type OperationStatus string

const (
	// StatusPlanned means the operation would run (dry-run)
	StatusPlanned OperationStatus = "planned"
	// StatusDone means the operation was performed
	StatusDone OperationStatus = "done"
	// StatusSkipped means the operation was not needed or not safe
	StatusSkipped OperationStatus = "skipped"
	// StatusError means the operation failed
	StatusError OperationStatus = "error"
)

// Operation is one planned or performed filesystem effect
type Operation struct {
	Type   OperationType
	Source string
	Target string
	Status OperationStatus
	// Reason explains a skip or carries the error message
	Reason string
}

// String renders the operation the way the reporter prints it
func (o Operation) String() string {
	switch o.Type {
	case OperationCreateDir:
		return fmt.Sprintf("mkdir %s", o.Target)
	case OperationCreateSymlink:
		return fmt.Sprintf("%s => %s", o.Source, o.Target)
	case OperationRemoveSymlink:
		return fmt.Sprintf("rm %s", o.Target)
	}
	return fmt.Sprintf("%s %s", o.Type, o.Target)
}
