package domain

// Person represents a character, optionally tied to a home planet
type Person struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Height   float64 `gorm:"not null"`
	Mass     int     `gorm:"not null"`
	IsActive bool    `gorm:"not null"`
	PlanetID *uint
	Planet   *Planet `gorm:"foreignKey:PlanetID"`
}

// TableName specifies the table name
func (Person) TableName() string {
	return "people"
}

type PersonView struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Height   float64 `json:"height"`
	Mass     int     `json:"mass"`
	IsActive bool    `json:"is_active"`
	PlanetID *uint   `json:"planet_id"`
}

// Serialize exposes the home planet by id only.
func (p Person) Serialize() PersonView {
	return PersonView{
		ID:       p.ID,
		Name:     p.Name,
		Height:   p.Height,
		Mass:     p.Mass,
		IsActive: p.IsActive,
		PlanetID: p.PlanetID,
	}
}
