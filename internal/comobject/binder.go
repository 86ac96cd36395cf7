package comobject

import "fmt"

// Handle is an opaque reference to a native automation object.
type Handle = any

// Descriptor is the reflected type information a Binder uses to resolve
// member names against a handle.
type Descriptor interface {
	// Name returns the type name of the native object.
	Name() string
}

// MemberKind selects how a member name is bound.
type MemberKind int

const (
	InvokeMethod MemberKind = iota
	GetProperty
	SetProperty
	GetIndex
)

func (k MemberKind) String() string {
	switch k {
	case InvokeMethod:
		return "InvokeMethod"
	case GetProperty:
		return "GetProperty"
	case SetProperty:
		return "SetProperty"
	case GetIndex:
		return "GetIndex"
	default:
		return fmt.Sprintf("MemberKind(%d)", int(k))
	}
}

// DefaultMember is the member name used for indexed access.
const DefaultMember = "Item"

// Binder resolves member names against native handles at call time.
// Errors returned by Bind and Release are native errors and are passed
// through to callers unchanged.
type Binder interface {
	// Bind resolves name on the handle described by d and invokes it with args.
	Bind(d Descriptor, h Handle, kind MemberKind, name string, args []any) (any, error)
	// Describe returns the descriptor of an existing handle.
	Describe(h Handle) (Descriptor, error)
	// Resolve looks up a program identifier in the platform class registry.
	Resolve(progID string) (Descriptor, error)
	// Instantiate creates a new native object of type d.
	Instantiate(d Descriptor) (Handle, error)
	// IsObject reports whether v is a native automation object that must be wrapped.
	IsObject(v any) bool
	// Same reports whether two handles refer to the same native object.
	Same(a, b Handle) bool
	// Hash returns a hash code for h consistent with Same.
	Hash(h Handle) uint64
	// Release returns h to the native reference counting mechanism.
	Release(h Handle) error
}

// TypeName is a Descriptor that only carries a name.
type TypeName string

func (n TypeName) Name() string {
	return string(n)
}

func getProperty(b Binder, d Descriptor, h Handle, name string) (any, error) {
	return b.Bind(d, h, GetProperty, name, nil)
}

func setProperty(b Binder, d Descriptor, h Handle, name string, value any) error {
	_, err := b.Bind(d, h, SetProperty, name, []any{value})
	return err
}

// getIndex binds the default member, which is how automation
// collections expose their indexer.
func getIndex(b Binder, d Descriptor, h Handle, indexes []any) (any, error) {
	return b.Bind(d, h, GetIndex, DefaultMember, indexes)
}

func invokeMethod(b Binder, d Descriptor, h Handle, name string, args []any) (any, error) {
	return b.Bind(d, h, InvokeMethod, name, args)
}

type missingArg struct{}

func (missingArg) String() string {
	return "<missing>"
}

// Missing stands for an omitted optional argument.
var Missing any = missingArg{}
