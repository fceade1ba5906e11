package models

type Department struct {
	ID   string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}
