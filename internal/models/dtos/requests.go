package dtos

// CreateServiceRequestReq is the POST /api/requests body
type CreateServiceRequestReq struct {
	AirportICAO  string  `json:"airportIcao"`
	ServiceType  string  `json:"serviceType"`
	Gate         string  `json:"gate"`
	FlightNumber string  `json:"flightNumber"`
	Aircraft     *string `json:"aircraft,omitempty"`
	Description  string  `json:"description"`
}

// UpdateStatusReq is the POST /api/requests/{id}/status body
type UpdateStatusReq struct {
	Status string `json:"status"`
}

// PostMessageReq is the POST /api/requests/{id}/messages body
type PostMessageReq struct {
	Message string `json:"message"`
}

// CreateSessionReq carries the identity assertion handed off by the external
// auth collaborator. The core trusts UserID once the collaborator asserts it.
type CreateSessionReq struct {
	UserID          string  `json:"userId"`
	DisplayName     string  `json:"displayName"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}
