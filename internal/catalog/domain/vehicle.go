package domain

// Vehicle represents a vehicle in the catalog
type Vehicle struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Model string `gorm:"type:varchar(50);not null"`
}

// TableName specifies the table name
func (Vehicle) TableName() string {
	return "vehicles"
}

type VehicleView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Model string `json:"model"`
}

func (v Vehicle) Serialize() VehicleView {
	return VehicleView{ID: v.ID, Name: v.Name, Model: v.Model}
}

// VehiclePilot links a person to a vehicle they pilot
type VehiclePilot struct {
	ID        uint    `gorm:"primaryKey"`
	PeopleID  uint    `gorm:"column:people_id;not null;index"`
	Person    Person  `gorm:"foreignKey:PeopleID"`
	VehicleID uint    `gorm:"not null;index"`
	Vehicle   Vehicle `gorm:"foreignKey:VehicleID"`
}

// TableName specifies the table name
func (VehiclePilot) TableName() string {
	return "vehicles_pilots"
}

type VehiclePilotView struct {
	ID        uint `json:"id"`
	PeopleID  uint `json:"people_id"`
	VehicleID uint `json:"vehicle_id"`
}

func (vp VehiclePilot) Serialize() VehiclePilotView {
	return VehiclePilotView{ID: vp.ID, PeopleID: vp.PeopleID, VehicleID: vp.VehicleID}
}
