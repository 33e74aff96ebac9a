package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestFullNameCollapsesBlanks(t *testing.T) {
	assert.Equal(t, "Ana Lopez", PersonName{FirstName: "Ana", LastName: "Lopez"}.FullName())
	assert.Equal(t, "Ana M Lopez", PersonName{FirstName: "Ana", MiddleName: "M", LastName: "Lopez"}.FullName())
	assert.Equal(t, "", PersonName{}.FullName())
}

func TestPropertyJSONIsFlat(t *testing.T) {
	property := Property{
		PropertyID:   "PROP00001",
		PropertyType: PropertyTypeMunicipal,
		Email:        "p@example.com",
		Attributes:   datatypes.JSONMap{"school": "PS 1", "borough_name": "Bronx"},
	}

	raw, err := json.Marshal(property)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "PROP00001", decoded["property_id"])
	assert.Equal(t, "PS 1", decoded["school"])
	assert.NotContains(t, decoded, "attributes")
	assert.NotContains(t, decoded, "assigned_to")
}

func TestIsPropertyAttribute(t *testing.T) {
	assert.True(t, IsPropertyAttribute(PropertyTypeCommercial, "mall_name"))
	assert.False(t, IsPropertyAttribute(PropertyTypeResident, "mall_name"))
	assert.False(t, IsPropertyAttribute("Warehouses", "street_name"))
}

func TestPrincipalRoles(t *testing.T) {
	principal := Principal{Username: "alice", Role: RoleEmployee}
	assert.True(t, principal.HasRole(RoleAdmin, RoleEmployee))
	assert.False(t, principal.HasRole(RoleAdmin))

	role, ok := ParseRole(" Admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)
}

func TestWeight(t *testing.T) {
	cases := map[string]struct {
		in   any
		want float64
		ok   bool
	}{
		"float":          {in: 2.5, want: 2.5, ok: true},
		"int":            {in: 3, want: 3, ok: true},
		"numeric string": {in: " 1.75 ", want: 1.75, ok: true},
		"word":           {in: "heavy", ok: false},
		"nil":            {in: nil, ok: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := Weight(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
