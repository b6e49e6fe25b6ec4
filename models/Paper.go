package models

// Paper is a publication linked to algorithms and tools through the
// algorithm_paper and tool_paper association tables
type Paper struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Title      string      `gorm:"type:varchar(255);not null" json:"title"`
	Year       *int        `json:"year"`
	DOI        *string     `gorm:"column:doi;type:varchar(128);uniqueIndex:uq_paper_doi" json:"doi"`
	Journal    *string     `gorm:"type:varchar(255)" json:"journal"`
	Authors    *string     `gorm:"type:text" json:"authors"`
	Algorithms []Algorithm `gorm:"many2many:algorithm_paper;" json:"algorithms,omitempty"`
	Tools      []Tool      `gorm:"many2many:tool_paper;" json:"tools,omitempty"`
}

func (Paper) TableName() string {
	return "paper"
}
