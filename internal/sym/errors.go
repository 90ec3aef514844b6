package sym

import "errors"

// Construction-time errors. Both indicate a malformed model rather
// than a runtime condition: once an expression set passes Linearize
// and Compile, the emitted evaluators have no error paths.
var (
	// ErrNonlinear indicates an equation is not linear in a declared
	// unknown.
	ErrNonlinear = errors.New("sym: equation not linear in unknown")

	// ErrUnresolved indicates an expression references a variable
	// outside its declared parameter list.
	ErrUnresolved = errors.New("sym: unresolved variable")
)
