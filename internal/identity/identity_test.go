package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExact(t *testing.T) {
	assert.True(t, Exact("a@x.com", "a@x.com"))
	assert.False(t, Exact("a@x.com", "b@x.com"))
	assert.False(t, Exact("", ""))
}

func TestParseAliases(t *testing.T) {
	a, err := ParseAliases(" a@x.com = legacy-1 ; b@x.com=legacy-2;a@x.com=legacy-3; ")
	require.NoError(t, err)
	assert.Equal(t, Aliases{
		"a@x.com": {"legacy-1", "legacy-3"},
		"b@x.com": {"legacy-2"},
	}, a)
	assert.Equal(t, []string{"a@x.com", "legacy-1", "legacy-3"}, a.Identities("a@x.com"))
	assert.Nil(t, a.Identities(""))

	_, err = ParseAliases("a@x.com")
	assert.ErrorIs(t, err, ErrMalformedAliases)

	empty, err := ParseAliases("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAliasMatcher(t *testing.T) {
	match := Aliases{"a@x.com": {"legacy-1"}}.Matcher()

	assert.True(t, match("a@x.com", "a@x.com"))
	assert.True(t, match("legacy-1", "a@x.com"))
	assert.False(t, match("legacy-1", "b@x.com"))
	assert.False(t, match("", "a@x.com"))
}
