package gorm

// Airport is static reference data keyed by ICAO code, seeded at startup
type Airport struct {
	ICAO string `gorm:"column:icao;primaryKey;type:varchar(4)" json:"icao"`
	Name string `gorm:"column:name;type:text;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}
