// Package comobject provides a late-bound proxy over native automation
// objects such as those exposed by Word, Excel or LibreOffice.
//
// A Proxy forwards every member access to its handle through a Binder.
// Native objects returned by an access are wrapped in child proxies that
// the parent owns; disposing the parent releases the whole subtree.
//
// Proxies are not safe for concurrent use. Automation servers are bound
// to the thread that initialised them, so callers are expected to drive
// a proxy tree from a single goroutine.
package comobject

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ErrDisposed is returned by any access made after Dispose.
var ErrDisposed = errors.New("comobject: proxy has been disposed")

// Proxy wraps one native handle and the descriptor used to bind members on it.
type Proxy struct {
	binder     Binder
	descriptor Descriptor
	handle     Handle
	parent     *Proxy
	children   []*Proxy
	disposed   bool
}

// New resolves progID through the platform class registry and creates a
// new native object of that type.
func New(b Binder, progID string) (*Proxy, error) {
	d, err := b.Resolve(progID)
	if err != nil {
		return nil, err
	}
	return NewFromType(b, d)
}

// NewFromType creates a new native object of type d.
func NewFromType(b Binder, d Descriptor) (*Proxy, error) {
	h, err := b.Instantiate(d)
	if err != nil {
		return nil, err
	}
	return Wrap(b, d, h), nil
}

// Wrap returns a proxy over an existing handle. The proxy takes over the
// caller's reference to h.
func Wrap(b Binder, d Descriptor, h Handle) *Proxy {
	return &Proxy{binder: b, descriptor: d, handle: h}
}

// WrapHandle is like Wrap but asks the binder for the descriptor.
func WrapHandle(b Binder, h Handle) (*Proxy, error) {
	d, err := b.Describe(h)
	if err != nil {
		return nil, err
	}
	return Wrap(b, d, h), nil
}

// Descriptor returns the reflected type of the wrapped handle.
func (p *Proxy) Descriptor() Descriptor {
	return p.descriptor
}

// Value returns the wrapped handle, bypassing the proxy.
func (p *Proxy) Value() Handle {
	return p.handle
}

// Children returns the proxies owned by p in creation order.
func (p *Proxy) Children() []*Proxy {
	out := make([]*Proxy, len(p.children))
	copy(out, p.children)
	return out
}

// Disposed reports whether Dispose has been called.
func (p *Proxy) Disposed() bool {
	return p.disposed
}

// Get reads the named property.
func (p *Proxy) Get(name string) (any, error) {
	if p.disposed {
		return nil, ErrDisposed
	}
	result, err := getProperty(p.binder, p.descriptor, p.handle, name)
	if err != nil {
		return nil, err
	}
	return p.wrap(result)
}

// Set writes the named property. A *Proxy value is unwrapped to its handle.
func (p *Proxy) Set(name string, value any) error {
	if p.disposed {
		return ErrDisposed
	}
	v, err := Unwrap(value)
	if err != nil {
		return err
	}
	return setProperty(p.binder, p.descriptor, p.handle, name, v)
}

// Index reads the default member with the given indexes.
func (p *Proxy) Index(indexes ...any) (any, error) {
	if p.disposed {
		return nil, ErrDisposed
	}
	args, err := unwrapArgs(indexes)
	if err != nil {
		return nil, err
	}
	result, err := getIndex(p.binder, p.descriptor, p.handle, args)
	if err != nil {
		return nil, err
	}
	return p.wrap(result)
}

// Invoke calls the named method. Arguments may be primitives, proxies, or
// []any sequences of those.
func (p *Proxy) Invoke(name string, args ...any) (any, error) {
	if p.disposed {
		return nil, ErrDisposed
	}
	in, err := unwrapArgs(args)
	if err != nil {
		return nil, err
	}
	result, err := invokeMethod(p.binder, p.descriptor, p.handle, name, in)
	if err != nil {
		return nil, err
	}
	return p.wrap(result)
}

// Equal reports whether p and o wrap the same native object.
func (p *Proxy) Equal(o *Proxy) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	if p.handle == nil || o.handle == nil {
		return p.handle == nil && o.handle == nil
	}
	return p.binder.Same(p.handle, o.handle)
}

// Hash returns a hash of the wrapped handle, or 0 when there is none.
func (p *Proxy) Hash() uint64 {
	if p.handle == nil {
		return 0
	}
	return p.binder.Hash(p.handle)
}

// Dispose disposes every owned child in creation order, then releases the
// wrapped handle and detaches p from its parent. Calling Dispose again is
// a no-op.
//
// A single release failure is returned as the binder reported it; several
// are aggregated into a *multierror.Error.
func (p *Proxy) Dispose() error {
	if p.disposed {
		return nil
	}
	p.disposed = true
	p.detach()

	var result *multierror.Error
	for _, child := range p.children {
		if err := child.Dispose(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	p.children = nil

	if p.handle != nil {
		if err := p.binder.Release(p.handle); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result != nil && len(result.Errors) == 1 {
		return result.Errors[0]
	}
	return result.ErrorOrNil()
}

// detach removes p from its parent's children unless the parent is itself
// being disposed.
func (p *Proxy) detach() {
	parent := p.parent
	p.parent = nil
	if parent == nil || parent.disposed {
		return
	}
	for i, child := range parent.children {
		if child == p {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

func (p *Proxy) String() string {
	return fmt.Sprintf("comobject.Proxy(%s)", p.name())
}

func (p *Proxy) name() string {
	if p.descriptor == nil {
		return "<unknown>"
	}
	return p.descriptor.Name()
}
