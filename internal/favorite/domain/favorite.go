package domain

import (
	catalog "github.com/tair/starwars-api/internal/catalog/domain"
)

// Kind identifies which catalog entity a favorite points at
type Kind string

const (
	KindPlanet  Kind = "planet"
	KindPerson  Kind = "person"
	KindVehicle Kind = "vehicle"
)

// Kinds lists every favorite kind in response order.
var Kinds = []Kind{KindPerson, KindPlanet, KindVehicle}

// FavoritePlanet links a user to a planet
type FavoritePlanet struct {
	ID       uint            `gorm:"primaryKey"`
	UserID   uint            `gorm:"not null;uniqueIndex:idx_favorite_planets_user_planet"`
	User     catalog.User    `gorm:"foreignKey:UserID"`
	PlanetID uint            `gorm:"not null;uniqueIndex:idx_favorite_planets_user_planet"`
	Planet   *catalog.Planet `gorm:"foreignKey:PlanetID"`
}

// TableName specifies the table name
func (FavoritePlanet) TableName() string {
	return "favorite_planets"
}

// FavoritePlanetView embeds the whole planet.
type FavoritePlanetView struct {
	ID       uint                `json:"id"`
	UserID   uint                `json:"user_id"`
	PlanetID uint                `json:"planet_id"`
	Planet   *catalog.PlanetView `json:"planet"`
}

func (f FavoritePlanet) Serialize() FavoritePlanetView {
	view := FavoritePlanetView{ID: f.ID, UserID: f.UserID, PlanetID: f.PlanetID}
	if f.Planet != nil {
		planet := f.Planet.Serialize()
		view.Planet = &planet
	}
	return view
}

// FavoritePerson links a user to a person
type FavoritePerson struct {
	ID       uint           `gorm:"primaryKey"`
	UserID   uint           `gorm:"not null;uniqueIndex:idx_favorite_people_user_people"`
	User     catalog.User   `gorm:"foreignKey:UserID"`
	PeopleID uint           `gorm:"column:people_id;not null;uniqueIndex:idx_favorite_people_user_people"`
	Person   catalog.Person `gorm:"foreignKey:PeopleID"`
}

// TableName specifies the table name
func (FavoritePerson) TableName() string {
	return "favorite_people"
}

// FavoritePersonView carries names only, unlike FavoritePlanetView.
type FavoritePersonView struct {
	ID         uint   `json:"id"`
	UserEmail  string `json:"user_email"`
	PeopleName string `json:"people_name"`
}

func (f FavoritePerson) Serialize() FavoritePersonView {
	return FavoritePersonView{ID: f.ID, UserEmail: f.User.Email, PeopleName: f.Person.Name}
}

// FavoriteVehicle links a user to a vehicle
type FavoriteVehicle struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_favorite_vehicles_user_vehicle"`
	User      catalog.User    `gorm:"foreignKey:UserID"`
	VehicleID uint            `gorm:"not null;uniqueIndex:idx_favorite_vehicles_user_vehicle"`
	Vehicle   catalog.Vehicle `gorm:"foreignKey:VehicleID"`
}

// TableName specifies the table name
func (FavoriteVehicle) TableName() string {
	return "favorite_vehicles"
}

type FavoriteVehicleView struct {
	ID          uint   `json:"id"`
	UserEmail   string `json:"user_email"`
	VehicleName string `json:"vehicle_name"`
}

func (f FavoriteVehicle) Serialize() FavoriteVehicleView {
	return FavoriteVehicleView{ID: f.ID, UserEmail: f.User.Email, VehicleName: f.Vehicle.Name}
}

// UserFavorites is every favorite of one user with relations loaded
type UserFavorites struct {
	People   []FavoritePerson
	Planets  []FavoritePlanet
	Vehicles []FavoriteVehicle
}

// Total counts favorites of all kinds
func (u *UserFavorites) Total() int {
	if u == nil {
		return 0
	}
	return len(u.People) + len(u.Planets) + len(u.Vehicles)
}

// UserFavoritesView is the transport form of UserFavorites.
type UserFavoritesView struct {
	FavoritePeople   []FavoritePersonView  `json:"favorite_people"`
	FavoritePlanets  []FavoritePlanetView  `json:"favorite_planets"`
	FavoriteVehicles []FavoriteVehicleView `json:"favorite_vehicles"`
}

// Serialize never returns nil slices so empty lists encode as [].
func (u *UserFavorites) Serialize() UserFavoritesView {
	view := UserFavoritesView{
		FavoritePeople:   []FavoritePersonView{},
		FavoritePlanets:  []FavoritePlanetView{},
		FavoriteVehicles: []FavoriteVehicleView{},
	}
	if u == nil {
		return view
	}
	for _, f := range u.People {
		view.FavoritePeople = append(view.FavoritePeople, f.Serialize())
	}
	for _, f := range u.Planets {
		view.FavoritePlanets = append(view.FavoritePlanets, f.Serialize())
	}
	for _, f := range u.Vehicles {
		view.FavoriteVehicles = append(view.FavoriteVehicles, f.Serialize())
	}
	return view
}
