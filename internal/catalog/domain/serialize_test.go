package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSerializeOmitsPassword(t *testing.T) {
	u := User{ID: 1, Email: "luke@rebels.org", Password: "hunter2", IsActive: true}

	raw, err := json.Marshal(u.Serialize())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	assert.Len(t, fields, 3)
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, string(raw), "hunter2")
	assert.Equal(t, "luke@rebels.org", fields["email"])
	assert.Equal(t, true, fields["is_active"])
}

func TestPersonSerializeHomePlanet(t *testing.T) {
	home := uint(5)

	tests := []struct {
		name   string
		person Person
		want   string
	}{
		{
			name:   "with home planet",
			person: Person{ID: 2, Name: "Leia", Height: 1.5, Mass: 49, IsActive: true, PlanetID: &home, Planet: &Planet{ID: 5}},
			want:   `{"id":2,"name":"Leia","height":1.5,"mass":49,"is_active":true,"planet_id":5}`,
		},
		{
			name:   "without home planet",
			person: Person{ID: 3, Name: "R2-D2", Height: 0.96, Mass: 32},
			want:   `{"id":3,"name":"R2-D2","height":0.96,"mass":32,"is_active":false,"planet_id":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.person.Serialize())
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}

func TestCatalogSerializeShapes(t *testing.T) {
	planet, err := json.Marshal(Planet{ID: 5, Name: "Tatooine", Population: 200000, Terrain: "desert", Climate: "arid"}.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":5,"name":"Tatooine","population":200000,"terrain":"desert","climate":"arid"}`, string(planet))

	vehicle, err := json.Marshal(Vehicle{ID: 4, Name: "Sand Crawler", Model: "Digger Crawler"}.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4,"name":"Sand Crawler","model":"Digger Crawler"}`, string(vehicle))

	pilot, err := json.Marshal(VehiclePilot{ID: 1, PeopleID: 2, VehicleID: 4}.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"people_id":2,"vehicle_id":4}`, string(pilot))
}
