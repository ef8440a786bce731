package ext

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/ashgrove-oss/valuewire/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlExtension() Extension {
	return Extension{
		Name: "com.example.URL",
		Accepts: func(v any) bool {
			_, ok := v.(*url.URL)
			return ok
		},
		ToReduced: func(v any, _ Context) (value.Value, error) {
			u := v.(*url.URL)
			return value.String(u.String()), nil
		},
		FromReduced: func(reduced value.Value, _ Context) (any, error) {
			s := reduced.(value.String)
			return url.Parse(string(s))
		},
	}
}

func TestRegistry_RegisterAndFindAccepting(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(urlExtension()))

	u, _ := url.Parse("https://example.com/path")
	found, ok := r.FindAccepting(u)
	require.True(t, ok)
	assert.Equal(t, "com.example.URL", found.Name)

	_, ok = r.FindAccepting(42)
	assert.False(t, ok)
}

func TestRegistry_ByName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(urlExtension()))

	found, ok := r.ByName("com.example.URL")
	require.True(t, ok)
	assert.Equal(t, "com.example.URL", found.Name)

	_, ok = r.ByName("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_DuplicateNameRejected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(urlExtension()))
	err := r.Register(urlExtension())
	assert.Error(t, err)
}

func TestRegistry_EmptyNameRejected(t *testing.T) {
	r := NewRegistry()
	err := r.Register(Extension{Accepts: func(any) bool { return true }})
	assert.Error(t, err)
}

func TestRegistry_RegistrationOrderDeterminesPriority(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Extension{
		Name:    "first",
		Accepts: func(v any) bool { _, ok := v.(int); return ok },
	}))
	require.NoError(t, r.Register(Extension{
		Name:    "second",
		Accepts: func(v any) bool { _, ok := v.(int); return ok },
	}))

	found, ok := r.FindAccepting(7)
	require.True(t, ok)
	assert.Equal(t, "first", found.Name, "first registered, matching extension wins")
}

func TestRegistry_MaxExtensionsCap(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < MaxExtensions; i++ {
		require.NoError(t, r.Register(Extension{
			Name:    fmt.Sprintf("ext-%d", i),
			Accepts: func(any) bool { return false },
		}))
	}
	assert.Equal(t, MaxExtensions, r.Len())

	err := r.Register(Extension{Name: "overflow", Accepts: func(any) bool { return false }})
	assert.Error(t, err)
}
