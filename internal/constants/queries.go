package constants

const (
	InsertServiceRequest = `
	INSERT INTO service_requests (
		pilot_id,
		airport_icao,
		service_type,
		gate,
		flight_number,
		aircraft,
		description,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 'open')
	RETURNING *
	`

	GetServiceRequestByID = `
	SELECT * FROM service_requests WHERE id = $1
	`

	// ClaimServiceRequest is the one concurrency-critical statement in the
	// system: the WHERE guard on status closes the race between two crew
	// members claiming the same request. Zero rows affected means the loser.
	ClaimServiceRequest = `
	UPDATE service_requests
	SET status = 'claimed', ground_crew_id = $2, updated_at = NOW()
	WHERE id = $1 AND status = 'open'
	RETURNING *
	`

	UpdateServiceRequestStatus = `
	UPDATE service_requests
	SET status = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING *
	`

	ListRequestsByAirport = `
	SELECT * FROM service_requests WHERE airport_icao = $1 ORDER BY created_at DESC
	`

	ListRequestsByPilot = `
	SELECT * FROM service_requests WHERE pilot_id = $1 ORDER BY created_at DESC
	`

	ListRequestsByCrew = `
	SELECT * FROM service_requests WHERE ground_crew_id = $1 ORDER BY created_at DESC
	`

	ListOpenRequests = `
	SELECT * FROM service_requests WHERE status = 'open' ORDER BY created_at DESC
	`

	ListOpenRequestsByAirport = `
	SELECT * FROM service_requests WHERE status = 'open' AND airport_icao = $1 ORDER BY created_at DESC
	`

	InsertChatMessage = `
	INSERT INTO chat_messages (request_id, user_id, message)
	VALUES ($1, $2, $3)
	RETURNING *
	`

	// Chat renders oldest-first, unlike every request listing above
	ListChatMessages = `
	SELECT * FROM chat_messages WHERE request_id = $1 ORDER BY created_at ASC
	`
)
