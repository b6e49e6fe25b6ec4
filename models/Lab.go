package models

// Lab is a research group or institute that develops or maintains tools
type Lab struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null;uniqueIndex:uq_lab_name" json:"name"`
	Institution *string `gorm:"type:varchar(255)" json:"institution"`
	Country     *string `gorm:"type:varchar(100)" json:"country"`
	Website     *string `gorm:"type:varchar(255)" json:"website"`
	Description *string `gorm:"type:text" json:"description"`
	Tools       []Tool  `gorm:"foreignKey:LabID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"tools,omitempty"`
}

func (Lab) TableName() string {
	return "lab"
}
