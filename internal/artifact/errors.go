package artifact

import "fmt"

// StructureError reports that a scheduling descriptor is missing a node or
// line this tool needs to patch. It points at a corrupted or incompatible
// template, never at a filesystem problem.
type StructureError struct {
	Path   string
	Detail string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("artifact %s: %s", e.Path, e.Detail)
}

// IOError reports that a scheduling descriptor could not be read or written
// back. Callers must not conflate it with StructureError: this one means a
// permissions or filesystem problem.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("artifact %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
