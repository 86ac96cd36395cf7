//go:build !windows

package oleauto

import (
	"errors"

	"github.com/go-ole/go-ole"
)

func newArrayVariant(items []any) (*ole.VARIANT, error) {
	return nil, errors.New("array arguments are only supported on Windows")
}
