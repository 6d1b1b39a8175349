package rdfaddr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrip(t *testing.T) {
	cases := []string{
		"myproject/src/a.ts#class:UserService",
		"myproject/src/a.ts#method:UserService.login",
		"myproject/src/a.ts#file:",
		"my-proj.v2/pkg/sub/file.go#function:Handler/Inner",
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			addr, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())

			addr2, err := Parse(addr.String())
			require.NoError(t, err)
			assert.True(t, addr.Equal(addr2))
		})
	}
}

func TestParse_NormalizesDotSlash(t *testing.T) {
	addr, err := Parse("myproject/./src/./a.ts#file:")
	require.NoError(t, err)
	assert.Equal(t, "src/a.ts", addr.File)
}

func TestParse_RejectsEscapingDotDot(t *testing.T) {
	_, err := Parse("myproject/../outside.ts#file:")
	assert.Error(t, err)
}

func TestParse_RejectsUnregisteredKind(t *testing.T) {
	_, err := Parse("myproject/a.ts#bogus-kind:Foo")
	assert.Error(t, err)
}

func TestParse_RejectsMissingSeparators(t *testing.T) {
	_, err := Parse("myproject/a.ts")
	assert.Error(t, err)

	_, err = Parse("noslash#file:")
	assert.Error(t, err)
}

func TestParse_RejectsInvalidSymbolSegment(t *testing.T) {
	_, err := Parse("myproject/a.ts#class:1Bad")
	assert.Error(t, err)
}

func TestAddress_EqualCaseSensitive(t *testing.T) {
	a, err := Parse("myproject/src/A.ts#class:Foo")
	require.NoError(t, err)
	b, err := Parse("myproject/src/a.ts#class:Foo")
	require.NoError(t, err)
	assert.False(t, a.Equal(b))
}
