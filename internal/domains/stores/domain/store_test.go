package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Acme Outdoor Gear":  "acme-outdoor-gear",
		"  Café  Olé ":       "caf--ol",
		"Bob's Bikes & Co.":  "bobs-bikes--co",
		"already_slugged-42": "already_slugged-42",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewStore_Validates(t *testing.T) {
	_, err := NewStore(" ", "shop")
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewStore("Shop", "")
	require.ErrorIs(t, err, ErrEmptySlug)

	_, err = NewStore("Shop", "Not A Slug")
	require.ErrorIs(t, err, ErrInvalidSlug)

	store, err := NewStore(" Shop ", "shop")
	require.NoError(t, err)
	assert.Equal(t, "Shop", store.Name)
}

func TestApplyProfile_OnlyTouchesPresentFields(t *testing.T) {
	store, err := NewStore("Shop", "shop")
	require.NoError(t, err)
	store.About = "old"
	color := " #ff0000 "
	store.ApplyProfile(Profile{PrimaryColor: &color})
	assert.Equal(t, "old", store.About)
	assert.Equal(t, "#ff0000", store.PrimaryColor)
}
