package oleauto

import (
	"testing"

	"github.com/go-ole/go-ole"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negokaz/comobject-mcp-server/internal/comobject"
)

func TestDispatchFlags(t *testing.T) {
	tests := []struct {
		kind comobject.MemberKind
		want int16
	}{
		{kind: comobject.InvokeMethod, want: ole.DISPATCH_METHOD | ole.DISPATCH_PROPERTYGET},
		{kind: comobject.GetProperty, want: ole.DISPATCH_PROPERTYGET},
		{kind: comobject.SetProperty, want: ole.DISPATCH_PROPERTYPUT},
		{kind: comobject.GetIndex, want: ole.DISPATCH_METHOD | ole.DISPATCH_PROPERTYGET},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, dispatchFlags(tt.kind))
		})
	}
}

func TestToParamsPassesScalars(t *testing.T) {
	params, cleanup, err := toParams([]any{"text", 17, true, nil})
	defer cleanup()
	require.NoError(t, err)
	assert.Equal(t, []any{"text", 17, true, nil}, params)
}

func TestToParamsMissing(t *testing.T) {
	params, cleanup, err := toParams([]any{comobject.Missing, 2})
	defer cleanup()
	require.NoError(t, err)

	v, ok := params[0].(*ole.VARIANT)
	require.True(t, ok)
	assert.Equal(t, ole.VT_ERROR, v.VT)
	assert.Equal(t, int64(dispParamNotFound), v.Val)
	assert.Equal(t, 2, params[1])
}

func TestBinderClassification(t *testing.T) {
	b := NewBinder()
	assert.False(t, b.IsObject("text"))
	assert.False(t, b.IsObject(nil))
	assert.False(t, b.IsObject((*ole.IDispatch)(nil)))
	assert.True(t, b.IsObject(&ole.IDispatch{}))
}

func TestBinderRejectsForeignHandles(t *testing.T) {
	b := NewBinder()
	_, err := b.Bind(&Descriptor{}, "not a handle", comobject.GetProperty, "Name", nil)
	assert.Error(t, err)
	assert.Error(t, b.Release(42))
	assert.False(t, b.Same(1, 1))
	assert.Equal(t, uint64(0), b.Hash(nil))
}

func TestDescriptorName(t *testing.T) {
	assert.Equal(t, "Word.Application", (&Descriptor{progID: "Word.Application"}).Name())
	assert.Equal(t, "IDispatch {00020906-0000-0000-C000-000000000046}",
		(&Descriptor{iid: "{00020906-0000-0000-C000-000000000046}"}).Name())
	assert.Equal(t, "IDispatch", (&Descriptor{}).Name())
}
