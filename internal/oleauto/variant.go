package oleauto

import (
	"errors"

	"github.com/go-ole/go-ole"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

// DISP_E_PARAMNOTFOUND, the scode COM uses for an omitted optional argument.
const dispParamNotFound = 0x80020004

// Initialize prepares the calling thread for single-threaded COM. The
// caller must have locked the goroutine to its OS thread.
func Initialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	// S_FALSE: already initialised on this thread
	if errors.As(err, &oleErr) && oleErr.Code() == 1 {
		return nil
	}
	return err
}

// Uninitialize undoes Initialize on the calling thread.
func Uninitialize() {
	ole.CoUninitialize()
}

// toParams converts proxy-level arguments into values go-ole can marshal.
// cleanup releases any temporary native storage and must always be called.
func toParams(args []any) ([]any, func(), error) {
	var owned []*ole.VARIANT
	cleanup := func() {
		for _, v := range owned {
			_ = v.Clear()
		}
	}
	params := make([]any, len(args))
	for i, arg := range args {
		if arg == comobject.Missing {
			params[i] = &ole.VARIANT{VT: ole.VT_ERROR, Val: dispParamNotFound}
			continue
		}
		switch value := arg.(type) {
		case []any:
			v, err := newArrayVariant(value)
			if err != nil {
				return nil, cleanup, err
			}
			owned = append(owned, v)
			params[i] = v
		case []string:
			items := make([]any, len(value))
			for j, s := range value {
				items[j] = s
			}
			v, err := newArrayVariant(items)
			if err != nil {
				return nil, cleanup, err
			}
			owned = append(owned, v)
			params[i] = v
		default:
			params[i] = arg
		}
	}
	return params, cleanup, nil
}

// fromVariant converts an invocation result. Object results keep the
// reference the call returned; everything else is copied out and the
// variant cleared.
func fromVariant(v *ole.VARIANT) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch {
	case v.VT == ole.VT_DISPATCH:
		disp := v.ToIDispatch()
		if disp == nil {
			return nil, nil
		}
		return disp, nil
	case v.VT == ole.VT_UNKNOWN:
		unknown := v.ToIUnknown()
		if unknown == nil {
			return nil, nil
		}
		defer unknown.Release()
		disp, err := unknown.QueryInterface(ole.IID_IDispatch)
		if err != nil {
			return nil, err
		}
		return disp, nil
	case v.VT&ole.VT_ARRAY != 0:
		defer v.Clear()
		values := v.ToArray().ToValueArray()
		out := make([]any, len(values))
		copy(out, values)
		return out, nil
	default:
		defer v.Clear()
		return v.Value(), nil
	}
}
