package models

// Tool is a software implementation of an Algorithm, optionally maintained by a Lab.
// Deleting the Lab clears LabID; deleting the Algorithm is refused while tools point at it.
type Tool struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AlgorithmID uint       `gorm:"not null;index:idx_tool_algorithm" json:"algorithm_id"`
	LabID       *uint      `gorm:"index:idx_tool_lab" json:"lab_id"`
	Name        string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_tool_name" json:"name"`
	Version     *string    `gorm:"type:varchar(50)" json:"version"`
	Description *string    `gorm:"type:text" json:"description"`
	Website     *string    `gorm:"type:varchar(255)" json:"website"`
	License     *string    `gorm:"type:varchar(100)" json:"license"`
	Algorithm   *Algorithm `gorm:"foreignKey:AlgorithmID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"algorithm,omitempty"`
	Lab         *Lab       `gorm:"foreignKey:LabID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"lab,omitempty"`
	Papers      []Paper    `gorm:"many2many:tool_paper;" json:"papers,omitempty"`
}

func (Tool) TableName() string {
	return "tool"
}
