package gorm

import "time"

// ServiceRequest exists on the GORM side for schema migration only; all
// runtime reads and writes go through the sqlx repository, including the
// conditional claim update.
type ServiceRequest struct {
	ID           string    `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	PilotID      string    `gorm:"column:pilot_id;type:varchar(64);not null;index"`
	AirportICAO  string    `gorm:"column:airport_icao;type:varchar(4);not null;index"`
	ServiceType  string    `gorm:"column:service_type;type:varchar(64);not null"`
	Gate         string    `gorm:"column:gate;type:varchar(16);not null"`
	FlightNumber string    `gorm:"column:flight_number;type:varchar(16);not null"`
	Aircraft     *string   `gorm:"column:aircraft;type:varchar(64)"`
	Description  string    `gorm:"column:description;type:text;not null"`
	Status       string    `gorm:"column:status;type:varchar(16);not null;default:open;index"`
	GroundCrewID *string   `gorm:"column:ground_crew_id;type:varchar(64);index"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

// TableName specifies the table name for GORM
func (ServiceRequest) TableName() string {
	return "service_requests"
}
