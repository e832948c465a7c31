// Package provider defines the reflection contract the hierarchy builder
// consumes: per class, its direct parents and its directly-defined methods.
// Implementations range from a declarative document (StaticProvider) to a
// tree-sitter backed source scanner (PythonProvider).
package provider

// Method is a method declared directly on a class. Origin names the class
// or module where the method is truly implemented when that differs from
// the declaring class (a re-exported or imported function appearing as a
// method); it is empty for ordinary declarations.
type Method struct {
	Name   string `json:"name"`
	Origin string `json:"origin,omitempty"`
}

// Provider supplies the structure of a class hierarchy. A class unknown to
// the provider yields empty results, never an error.
//
// Providers backing a batch analysis must be safe for concurrent reads;
// both implementations in this package read an immutable catalog after
// construction.
type Provider interface {
	// DirectParents returns the class's declared parents, ordered and
	// unique.
	DirectParents(class string) []string

	// OwnMethods returns the methods declared directly on the class, in
	// declaration order.
	OwnMethods(class string) []Method
}
