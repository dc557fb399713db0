package domain

// Planet represents a planet in the catalog
type Planet struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Population int    `gorm:"not null"`
	Terrain    string `gorm:"type:varchar(50);not null"`
	Climate    string `gorm:"type:varchar(50);not null"`
}

// TableName specifies the table name
func (Planet) TableName() string {
	return "planets"
}

type PlanetView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Population int    `json:"population"`
	Terrain    string `json:"terrain"`
	Climate    string `json:"climate"`
}

func (p Planet) Serialize() PlanetView {
	return PlanetView{
		ID:         p.ID,
		Name:       p.Name,
		Population: p.Population,
		Terrain:    p.Terrain,
		Climate:    p.Climate,
	}
}
