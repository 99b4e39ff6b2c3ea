package sql

import "time"

// ResultRecordEntity is the schema model used for persistence.
type ResultRecordEntity struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Kind       string    `gorm:"size:32;not null"`
	ModelName  string    `gorm:"size:255;index;not null"`
	Count      int       `gorm:"not null"`
	ResultCode int       `gorm:"not null"`
	RecordedAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name used by GORM.
func (ResultRecordEntity) TableName() string {
	return "flclient_result_records"
}
