package valuewire

import (
	"net/url"
	"testing"

	"github.com/ashgrove-oss/valuewire/ext"
	"github.com/ashgrove-oss/valuewire/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_PackageLevel_RoundTrip(t *testing.T) {
	rec := value.NewRecord()
	rec.Set("foo", value.String("bar"))

	data, err := Encode(rec)
	require.NoError(t, err)

	out, err := Decode(data)
	require.NoError(t, err)

	got := out.(*value.Record)
	v, ok := got.Get("foo")
	require.True(t, ok)
	assert.Equal(t, value.String("bar"), v)
}

func TestNewCodec_ReusedAcrossCalls(t *testing.T) {
	c, err := NewCodec(WithSmallInts(true))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		data, err := c.Encode(value.Number(7))
		require.NoError(t, err)

		out, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, value.Number(7), out)
	}
}

func urlExtension() ext.Extension {
	return DefineExtension(ext.Extension{
		Name: "com.example.URL",
		Accepts: func(v any) bool {
			_, ok := v.(*url.URL)
			return ok
		},
		ToReduced: func(v any, _ ext.Context) (value.Value, error) {
			return value.String(v.(*url.URL).String()), nil
		},
		FromReduced: func(reduced value.Value, _ ext.Context) (any, error) {
			return url.Parse(string(reduced.(value.String)))
		},
	})
}

func TestWithExtension_RoundTripsExternalType(t *testing.T) {
	u, err := url.Parse("https://example.com/a?b=c")
	require.NoError(t, err)

	data, err := Encode(u, WithExtension(urlExtension()))
	require.NoError(t, err)

	out, err := Decode(data, WithExtension(urlExtension()))
	require.NoError(t, err)

	got := out.(*url.URL)
	assert.Equal(t, u.String(), got.String())
}

func TestDecode_WithoutMatchingExtension_Fails(t *testing.T) {
	u, err := url.Parse("https://example.com")
	require.NoError(t, err)

	data, err := Encode(u, WithExtension(urlExtension()))
	require.NoError(t, err)

	_, err = Decode(data)
	assert.Error(t, err)
}

func TestNewCodec_DuplicateExtensionNameFails(t *testing.T) {
	_, err := NewCodec(WithExtension(urlExtension()), WithExtension(urlExtension()))
	assert.Error(t, err)
}

func TestWithContext_ThreadedToExtensionCallbacks(t *testing.T) {
	type ctxKey struct{}
	seen := make(chan any, 2)

	spec := ext.Extension{
		Name: "ctx.probe",
		Accepts: func(v any) bool {
			_, ok := v.(ctxKey)
			return ok
		},
		ToReduced: func(v any, ctx ext.Context) (value.Value, error) {
			seen <- ctx
			return value.Null{}, nil
		},
		FromReduced: func(value.Value, ext.Context) (any, error) {
			return ctxKey{}, nil
		},
	}

	_, err := Encode(ctxKey{}, WithExtension(spec), WithContext("hello"))
	require.NoError(t, err)

	select {
	case ctx := <-seen:
		assert.Equal(t, "hello", ctx)
	default:
		t.Fatal("ToReduced was not called")
	}
}
