//go:build windows

package oleauto

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

var (
	modoleaut32               = windows.NewLazySystemDLL("oleaut32.dll")
	procSafeArrayCreateVector = modoleaut32.NewProc("SafeArrayCreateVector")
	procSafeArrayPutElement   = modoleaut32.NewProc("SafeArrayPutElement")
	procSafeArrayDestroy      = modoleaut32.NewProc("SafeArrayDestroy")
)

// newArrayVariant builds a one-dimensional VARIANT array. Automation
// servers such as the LibreOffice bridge expect sequences in this form.
// The returned variant owns the array; clear it after the call.
func newArrayVariant(items []any) (*ole.VARIANT, error) {
	sa, _, err := procSafeArrayCreateVector.Call(uintptr(ole.VT_VARIANT), 0, uintptr(len(items)))
	if sa == 0 {
		return nil, fmt.Errorf("SafeArrayCreateVector: %w", err)
	}
	for i, item := range items {
		if err := putElement(sa, int32(i), item); err != nil {
			procSafeArrayDestroy.Call(sa)
			return nil, err
		}
	}
	v := ole.NewVariant(ole.VT_ARRAY|ole.VT_VARIANT, int64(sa))
	return &v, nil
}

func putElement(sa uintptr, index int32, item any) error {
	elem, release, err := elementVariant(item)
	if err != nil {
		return err
	}
	defer release()
	// SafeArrayPutElement copies the variant, adding its own references
	hr, _, _ := procSafeArrayPutElement.Call(sa, uintptr(unsafe.Pointer(&index)), uintptr(unsafe.Pointer(&elem)))
	if hr != 0 {
		return ole.NewError(hr)
	}
	return nil
}

func elementVariant(item any) (ole.VARIANT, func(), error) {
	noop := func() {}
	if item == comobject.Missing {
		return ole.NewVariant(ole.VT_ERROR, dispParamNotFound), noop, nil
	}
	switch v := item.(type) {
	case nil:
		return ole.NewVariant(ole.VT_NULL, 0), noop, nil
	case bool:
		if v {
			return ole.NewVariant(ole.VT_BOOL, -1), noop, nil
		}
		return ole.NewVariant(ole.VT_BOOL, 0), noop, nil
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return ole.NewVariant(ole.VT_I4, int64(v)), noop, nil
		}
		return ole.NewVariant(ole.VT_I8, int64(v)), noop, nil
	case int8:
		return ole.NewVariant(ole.VT_I1, int64(v)), noop, nil
	case int16:
		return ole.NewVariant(ole.VT_I2, int64(v)), noop, nil
	case int32:
		return ole.NewVariant(ole.VT_I4, int64(v)), noop, nil
	case int64:
		return ole.NewVariant(ole.VT_I8, v), noop, nil
	case uint8:
		return ole.NewVariant(ole.VT_UI1, int64(v)), noop, nil
	case uint16:
		return ole.NewVariant(ole.VT_UI2, int64(v)), noop, nil
	case uint32:
		return ole.NewVariant(ole.VT_UI4, int64(v)), noop, nil
	case float32:
		return ole.NewVariant(ole.VT_R4, int64(math.Float32bits(v))), noop, nil
	case float64:
		return ole.NewVariant(ole.VT_R8, int64(math.Float64bits(v))), noop, nil
	case string:
		bstr := ole.SysAllocString(v)
		return ole.NewVariant(ole.VT_BSTR, int64(uintptr(unsafe.Pointer(bstr)))),
			func() { ole.SysFreeString(bstr) }, nil
	case *ole.IDispatch:
		return ole.NewVariant(ole.VT_DISPATCH, int64(uintptr(unsafe.Pointer(v)))), noop, nil
	case []any:
		nested, err := newArrayVariant(v)
		if err != nil {
			return ole.VARIANT{}, noop, err
		}
		return *nested, func() { _ = nested.Clear() }, nil
	}
	return ole.VARIANT{}, noop, fmt.Errorf("unsupported array element type: %T", item)
}
