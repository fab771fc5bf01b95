package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	t.Setenv(LocalhostAliasEnv, "")
	dir, err := NewDirectory([]Mapping{
		{Domain: "kaburlutoday.com", Slug: "kaburlu-today"},
		{Domain: "WWW.PrajaVani.News", Slug: "praja-vani"},
	}, "kaburlu-today", "kaburlutoday.com")
	require.NoError(t, err)
	return dir
}

func TestDirectory_Lookup(t *testing.T) {
	dir := newTestDirectory(t)

	got := dir.Lookup(Normalize("www.KaburluToday.com:443"))
	assert.Equal(t, Lookup{Domain: "kaburlutoday.com", Slug: "kaburlu-today", Mapped: true}, got)

	got = dir.Lookup("prajavani.news")
	assert.True(t, got.Mapped)
	assert.Equal(t, "praja-vani", got.Slug)

	got = dir.Lookup("unknown.example")
	assert.False(t, got.Mapped)
	assert.Equal(t, Domain("unknown.example"), got.Domain)
	assert.Equal(t, "kaburlu-today", got.Slug, "unmapped domains carry the default slug")
}

func TestDirectory_LocalhostSubstitution(t *testing.T) {
	dir := newTestDirectory(t)
	got := dir.Lookup(LocalDomain)
	assert.Equal(t, Domain("kaburlutoday.com"), got.Domain)
	assert.True(t, got.Mapped)

	t.Run("env alias wins", func(t *testing.T) {
		t.Setenv(LocalhostAliasEnv, "prajavani.news")
		dir, err := NewDirectory([]Mapping{{Domain: "prajavani.news", Slug: "praja-vani"}}, "praja-vani", "kaburlutoday.com")
		require.NoError(t, err)
		assert.Equal(t, "praja-vani", dir.Lookup(LocalDomain).Slug)
	})

	t.Run("no dev domain", func(t *testing.T) {
		t.Setenv(LocalhostAliasEnv, "")
		dir, err := NewDirectory(nil, "kaburlu-today", "")
		require.NoError(t, err)
		got := dir.Lookup(LocalDomain)
		assert.Equal(t, LocalDomain, got.Domain)
		assert.False(t, got.Mapped)
	})
}

func TestNewDirectory_Rejects(t *testing.T) {
	_, err := NewDirectory([]Mapping{
		{Domain: "example.com", Slug: "a"},
		{Domain: "www.example.com", Slug: "b"},
	}, "a", "")
	require.ErrorIs(t, err, ErrDuplicateDomain)

	_, err = NewDirectory([]Mapping{{Domain: "example.com", Slug: "Not A Slug"}}, "a", "")
	require.ErrorIs(t, err, ErrInvalidSlug)

	_, err = NewDirectory(nil, "", "")
	require.ErrorIs(t, err, ErrInvalidSlug)
}

func TestDirectory_Entries(t *testing.T) {
	dir := newTestDirectory(t)
	assert.Equal(t, 2, dir.Len())
	assert.Equal(t, []Mapping{
		{Domain: "kaburlutoday.com", Slug: "kaburlu-today"},
		{Domain: "prajavani.news", Slug: "praja-vani"},
	}, dir.Entries())
}

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "kaburlu-today", MakeSlug("Kaburlu Today!"))
	assert.Equal(t, "item", MakeSlug("!!!"))
	assert.True(t, IsCanonicalSlug("tv9-telugu"))
	assert.False(t, IsCanonicalSlug("-x"))
}
