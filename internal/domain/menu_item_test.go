package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuItemNameSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Caramel Latte", want: "caramel-latte"},
		{name: "  Iced   Caramel\tLatte ", want: "iced-caramel-latte"},
		{name: "Espresso", want: "espresso"},
		{name: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MenuItem{Name: tt.name}.NameSlug(), tt.name)
	}
}

func TestMenuItemOptionalIdentifiers(t *testing.T) {
	menuID := "  MNU-01 "
	slug := " Flat-White "
	item := MenuItem{ID: 42, MenuID: &menuID, Slug: &slug}

	assert.Equal(t, "42", item.IDText())
	assert.Equal(t, "MNU-01", item.ExternalID())
	assert.Equal(t, "flat-white", item.SlugText())

	bare := MenuItem{ID: 1}
	assert.Empty(t, bare.ExternalID())
	assert.Empty(t, bare.SlugText())
}
