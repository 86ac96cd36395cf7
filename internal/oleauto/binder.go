// Package oleauto binds comobject proxies to COM automation objects
// through IDispatch late binding.
package oleauto

import (
	"fmt"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// Descriptor identifies the COM class or interface behind a handle.
type Descriptor struct {
	progID string
	clsid  *ole.GUID
	iid    string
}

func (d *Descriptor) Name() string {
	switch {
	case d.progID != "":
		return d.progID
	case d.iid != "":
		return "IDispatch " + d.iid
	default:
		return "IDispatch"
	}
}

// Binder implements comobject.Binder on top of go-ole. It must only be
// used from a thread that has called Initialize.
type Binder struct{}

var _ comobject.Binder = (*Binder)(nil)

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(d comobject.Descriptor, h comobject.Handle, kind comobject.MemberKind, name string, args []any) (result any, err error) {
	disp, ok := h.(*ole.IDispatch)
	if !ok || disp == nil {
		return nil, fmt.Errorf("not an IDispatch handle: %T", h)
	}

	params, cleanup, err := toParams(args)
	defer cleanup()
	if err != nil {
		return nil, err
	}

	// go-ole panics on argument types it cannot marshal
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%s %s: %v", kind, name, r)
		}
	}()

	v, err := disp.InvokeWithOptionalArgs(name, dispatchFlags(kind), params)
	if err != nil {
		return nil, err
	}
	return fromVariant(v)
}

func dispatchFlags(kind comobject.MemberKind) int16 {
	switch kind {
	case comobject.GetProperty:
		return ole.DISPATCH_PROPERTYGET
	case comobject.SetProperty:
		return ole.DISPATCH_PROPERTYPUT
	default:
		// parameterised properties such as Range("A1") are reached the
		// same way as methods
		return ole.DISPATCH_METHOD | ole.DISPATCH_PROPERTYGET
	}
}

// Describe reads the interface id from the object's type information when
// the object provides it.
func (b *Binder) Describe(h comobject.Handle) (comobject.Descriptor, error) {
	disp, ok := h.(*ole.IDispatch)
	if !ok || disp == nil {
		return nil, fmt.Errorf("not an IDispatch handle: %T", h)
	}
	d := &Descriptor{}
	tinfo, err := disp.GetTypeInfo()
	if err != nil || tinfo == nil {
		return d, nil
	}
	defer tinfo.Release()
	if attr, err := tinfo.GetTypeAttr(); err == nil && attr != nil {
		d.iid = attr.Guid.String()
	}
	return d, nil
}

func (b *Binder) Resolve(progID string) (comobject.Descriptor, error) {
	clsid, err := oleutil.ClassIDFrom(progID)
	if err != nil {
		return nil, err
	}
	return &Descriptor{progID: progID, clsid: clsid}, nil
}

func (b *Binder) Instantiate(d comobject.Descriptor) (comobject.Handle, error) {
	desc, ok := d.(*Descriptor)
	if !ok || desc.clsid == nil {
		return nil, fmt.Errorf("descriptor %s cannot be instantiated", d.Name())
	}
	unknown, err := ole.CreateInstance(desc.clsid, ole.IID_IUnknown)
	if err != nil {
		return nil, err
	}
	defer unknown.Release()
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, err
	}
	return disp, nil
}

// Active attaches to a running instance registered in the running object
// table.
func (b *Binder) Active(progID string) (comobject.Handle, comobject.Descriptor, error) {
	unknown, err := oleutil.GetActiveObject(progID)
	if err != nil {
		return nil, nil, err
	}
	defer unknown.Release()
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, nil, err
	}
	return disp, &Descriptor{progID: progID}, nil
}

func (b *Binder) IsObject(v any) bool {
	disp, ok := v.(*ole.IDispatch)
	return ok && disp != nil
}

// Same compares COM identity, which is defined by the IUnknown pointer.
func (b *Binder) Same(x, y comobject.Handle) bool {
	ux := identity(x)
	if ux == 0 {
		return false
	}
	return ux == identity(y)
}

func (b *Binder) Hash(h comobject.Handle) uint64 {
	return uint64(identity(h))
}

func (b *Binder) Release(h comobject.Handle) error {
	disp, ok := h.(*ole.IDispatch)
	if !ok || disp == nil {
		return fmt.Errorf("not an IDispatch handle: %T", h)
	}
	disp.Release()
	return nil
}

func identity(h comobject.Handle) uintptr {
	disp, ok := h.(*ole.IDispatch)
	if !ok || disp == nil {
		return 0
	}
	unknown, err := disp.QueryInterface(ole.IID_IUnknown)
	if err != nil {
		return uintptr(unsafe.Pointer(disp))
	}
	defer unknown.Release()
	return uintptr(unsafe.Pointer(unknown))
}
