package models

// Problem is a biological question that algorithms address, e.g. sequence alignment or genome assembly
type Problem struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"type:varchar(255);not null;uniqueIndex:uq_problem_name" json:"name"`
	Description *string     `gorm:"type:text" json:"description"`
	Algorithms  []Algorithm `gorm:"foreignKey:ProblemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"algorithms,omitempty"`
}

func (Problem) TableName() string {
	return "problem"
}
