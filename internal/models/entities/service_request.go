package entities

import (
	"time"

	"ground-experiment/groundlink/internal/constants"
)

// ServiceRequest is a ground-service request filed by a pilot at a gate.
// GroundCrewID is nil exactly while the request is still open.
type ServiceRequest struct {
	ID           string                  `db:"id" json:"id"`
	PilotID      string                  `db:"pilot_id" json:"pilotId"`
	AirportICAO  string                  `db:"airport_icao" json:"airportIcao"`
	ServiceType  constants.ServiceType   `db:"service_type" json:"serviceType"`
	Gate         string                  `db:"gate" json:"gate"`
	FlightNumber string                  `db:"flight_number" json:"flightNumber"`
	Aircraft     *string                 `db:"aircraft" json:"aircraft"`
	Description  string                  `db:"description" json:"description"`
	Status       constants.RequestStatus `db:"status" json:"status"`
	GroundCrewID *string                 `db:"ground_crew_id" json:"groundCrewId"`
	CreatedAt    time.Time               `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time               `db:"updated_at" json:"updatedAt"`
}
