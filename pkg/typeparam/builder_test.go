package typeparam_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/typekit/pkg/typeparam"
)

func TestBuilderMake(t *testing.T) {
	t.Parallel()

	sb, err := typeparam.Builder[*strings.Builder]{}.Make()
	require.NoError(t, err)
	require.NotNil(t, sb)
	sb.WriteString("hello")
	assert.Equal(t, "hello", sb.String())

	obj := typeparam.Builder[Object]{}.MustMake()
	assert.Equal(t, reflect.TypeFor[Object](), reflect.TypeOf(obj))
}

func TestBuilderMatchesExplicitForm(t *testing.T) {
	t.Parallel()

	anon, err := typeparam.Builder[Counter]{}.Make()
	require.NoError(t, err)

	explicit, err := typeparam.New[Counter](reflect.TypeFor[typeparam.Builder[Counter]](), 0)
	require.NoError(t, err)

	assert.Equal(t, explicit, anon)
	assert.Equal(t, 10, anon.Start)
}

func TestBuilderMustMakePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		typeparam.Builder[error]{}.MustMake()
	})
	assert.Panics(t, func() {
		typeparam.Builder[Broken]{}.MustMake()
	})
}
