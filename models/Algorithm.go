package models

// Algorithm solves exactly one Problem and can be implemented by tools and described by papers
type Algorithm struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ProblemID   uint     `gorm:"not null;index:idx_algorithm_problem" json:"problem_id"`
	Name        string   `gorm:"type:varchar(255);not null;uniqueIndex:uq_algorithm_name" json:"name"`
	Description *string  `gorm:"type:text" json:"description"`
	Year        *int     `json:"year"`
	Problem     *Problem `gorm:"foreignKey:ProblemID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"problem,omitempty"`
	Tools       []Tool   `gorm:"foreignKey:AlgorithmID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"tools,omitempty"`
	Papers      []Paper  `gorm:"many2many:algorithm_paper;" json:"papers,omitempty"`
}

func (Algorithm) TableName() string {
	return "algorithm"
}
