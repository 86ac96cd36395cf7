package comobject

// wrap applies the result policy: native objects become owned child
// proxies, sequences are wrapped element by element, and everything else
// is returned as is.
func (p *Proxy) wrap(v any) (any, error) {
	switch value := v.(type) {
	case nil:
		return nil, nil
	case *Proxy:
		return value, nil
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			w, err := p.wrap(item)
			if err != nil {
				p.releaseAll(value[i+1:])
				return nil, err
			}
			out[i] = w
		}
		return out, nil
	}
	if !p.binder.IsObject(v) {
		return v, nil
	}
	child, err := WrapHandle(p.binder, v)
	if err != nil {
		// nobody else holds the reference
		_ = p.binder.Release(v)
		return nil, err
	}
	child.parent = p
	p.children = append(p.children, child)
	return child, nil
}

// releaseAll drops the references held by native objects in items that
// will never be wrapped.
func (p *Proxy) releaseAll(items []any) {
	for _, item := range items {
		switch value := item.(type) {
		case nil, *Proxy:
		case []any:
			p.releaseAll(value)
		default:
			if p.binder.IsObject(value) {
				_ = p.binder.Release(value)
			}
		}
	}
}

// Unwrap converts v to what the native side expects: a proxy becomes its
// handle and []any sequences are converted element by element.
func Unwrap(v any) (any, error) {
	switch value := v.(type) {
	case *Proxy:
		if value == nil {
			return nil, nil
		}
		if value.disposed {
			return nil, ErrDisposed
		}
		return value.handle, nil
	case []*Proxy:
		out := make([]any, len(value))
		for i, item := range value {
			u, err := Unwrap(item)
			if err != nil {
				return nil, err
			}
			out[i] = u
		}
		return out, nil
	case []any:
		return unwrapArgs(value)
	}
	return v, nil
}

func unwrapArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		u, err := Unwrap(arg)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// IsPrimitive reports whether v is passed to and from the native side by
// value: booleans, numbers, strings, byte slices and other non-reference
// values.
func IsPrimitive(v any) bool {
	switch v.(type) {
	case bool, string, []byte,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return true
	}
	return false
}
