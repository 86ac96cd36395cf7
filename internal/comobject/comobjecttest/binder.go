// Package comobjecttest provides an in-memory Binder for testing code
// built on comobject without a native automation server.
package comobjecttest

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// Method implements a fake native method.
type Method func(self *Object, args []any) (any, error)

// Object is a fake native automation object. Refs counts the references
// handed out across the binder; each must be released exactly once.
//
// DescribeErr and ReleaseErr, when set, are returned by Describe and
// Release for this object.
type Object struct {
	ID          int
	TypeName    string
	Props       map[string]any
	Methods     map[string]Method
	Refs        int
	Released    int
	DescribeErr error
	ReleaseErr  error
}

// Call records one Bind invocation.
type Call struct {
	Object *Object
	Kind   comobject.MemberKind
	Name   string
	Args   []any
}

// Binder is a comobject.Binder over fake objects. Its zero value is not
// usable; create one with NewBinder.
type Binder struct {
	classes  map[string]func(o *Object)
	nextID   int
	Calls    []Call
	Releases []*Object
}

var _ comobject.Binder = (*Binder)(nil)

func NewBinder() *Binder {
	return &Binder{classes: map[string]func(o *Object){}}
}

// Register makes progID resolvable. init, if not nil, populates each new
// instance.
func (b *Binder) Register(progID string, init func(o *Object)) {
	b.classes[progID] = init
}

// NewObject allocates a fake object with a unique id.
func (b *Binder) NewObject(typeName string) *Object {
	b.nextID++
	return &Object{
		ID:       b.nextID,
		TypeName: typeName,
		Props:    map[string]any{},
		Methods:  map[string]Method{},
	}
}

func (b *Binder) Bind(d comobject.Descriptor, h comobject.Handle, kind comobject.MemberKind, name string, args []any) (any, error) {
	o, ok := h.(*Object)
	if !ok {
		return nil, fmt.Errorf("not a fake object: %T", h)
	}
	if o.Refs > 0 && o.Released >= o.Refs {
		return nil, fmt.Errorf("object %d used after release", o.ID)
	}
	b.Calls = append(b.Calls, Call{Object: o, Kind: kind, Name: name, Args: args})

	result, err := b.bind(o, kind, name, args)
	if err != nil {
		return nil, err
	}
	addRef(result)
	return result, nil
}

func (b *Binder) bind(o *Object, kind comobject.MemberKind, name string, args []any) (any, error) {
	switch kind {
	case comobject.GetProperty:
		v, ok := o.Props[name]
		if !ok {
			return nil, unknownMember(o, name)
		}
		return v, nil
	case comobject.SetProperty:
		if len(args) != 1 {
			return nil, fmt.Errorf("%s.%s: expected 1 argument, got %d", o.TypeName, name, len(args))
		}
		o.Props[name] = args[0]
		return nil, nil
	case comobject.GetIndex, comobject.InvokeMethod:
		m, ok := o.Methods[name]
		if !ok {
			return nil, unknownMember(o, name)
		}
		return m(o, args)
	}
	return nil, fmt.Errorf("unsupported member kind: %s", kind)
}

// addRef counts the objects in v as handed out to the caller.
func addRef(v any) {
	switch value := v.(type) {
	case *Object:
		value.Refs++
	case []any:
		for _, item := range value {
			addRef(item)
		}
	}
}

func (b *Binder) Describe(h comobject.Handle) (comobject.Descriptor, error) {
	o, ok := h.(*Object)
	if !ok {
		return nil, fmt.Errorf("not a fake object: %T", h)
	}
	if o.DescribeErr != nil {
		return nil, o.DescribeErr
	}
	return comobject.TypeName(o.TypeName), nil
}

func (b *Binder) Resolve(progID string) (comobject.Descriptor, error) {
	if _, ok := b.classes[progID]; !ok {
		return nil, fmt.Errorf("invalid class string: %s", progID)
	}
	return comobject.TypeName(progID), nil
}

func (b *Binder) Instantiate(d comobject.Descriptor) (comobject.Handle, error) {
	init, ok := b.classes[d.Name()]
	if !ok {
		return nil, fmt.Errorf("class not registered: %s", d.Name())
	}
	o := b.NewObject(d.Name())
	if init != nil {
		init(o)
	}
	o.Refs = 1
	return o, nil
}

func (b *Binder) IsObject(v any) bool {
	_, ok := v.(*Object)
	return ok
}

func (b *Binder) Same(x, y comobject.Handle) bool {
	ox, ok := x.(*Object)
	if !ok {
		return false
	}
	oy, ok := y.(*Object)
	return ok && ox == oy
}

func (b *Binder) Hash(h comobject.Handle) uint64 {
	o, ok := h.(*Object)
	if !ok {
		return 0
	}
	f := fnv.New64a()
	f.Write([]byte(strconv.Itoa(o.ID)))
	return f.Sum64()
}

// Release counts releases. Releasing more references than were handed out
// fails the way a native over-release would.
func (b *Binder) Release(h comobject.Handle) error {
	o, ok := h.(*Object)
	if !ok {
		return fmt.Errorf("not a fake object: %T", h)
	}
	o.Released++
	b.Releases = append(b.Releases, o)
	if o.ReleaseErr != nil {
		return o.ReleaseErr
	}
	if o.Released > max(o.Refs, 1) {
		return fmt.Errorf("object %d released %d times", o.ID, o.Released)
	}
	return nil
}

func unknownMember(o *Object, name string) error {
	return fmt.Errorf("unknown name: %s.%s", o.TypeName, name)
}
