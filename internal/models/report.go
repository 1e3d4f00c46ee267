package models

import "time"

type Report struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EmployeeID uint      `gorm:"index;not null" json:"employee_id"`
	Employee   *Employee `json:"employee,omitempty"`

	ReportDate  time.Time `gorm:"not null" json:"report_date"`
	ProjectName string    `gorm:"size:255;not null" json:"project_name"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Notes       string    `gorm:"type:text" json:"notes"`

	Screenshots []Screenshot `json:"screenshots"`
}

type Screenshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ReportID uint   `gorm:"index;not null" json:"report_id"`
	URL      string `gorm:"type:text;not null" json:"url"`
	Caption  string `gorm:"size:255" json:"caption"`
	Position int    `json:"position"`
}
