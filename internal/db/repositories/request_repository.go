package repositories

import (
	"context"
	"database/sql"
	"errors"

	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// ErrNoRowsAffected reports a conditional update that matched nothing
var ErrNoRowsAffected = errors.New("no rows affected")

type RequestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db}
}

func (r *RequestRepository) InsertRequest(ctx context.Context, req *entities.ServiceRequest) error {
	return r.db.QueryRowxContext(ctx, constants.InsertServiceRequest,
		req.PilotID,
		req.AirportICAO,
		req.ServiceType,
		req.Gate,
		req.FlightNumber,
		req.Aircraft,
		req.Description,
	).StructScan(req)
}

func (r *RequestRepository) FindRequestByID(ctx context.Context, id string) (*entities.ServiceRequest, error) {

	var req entities.ServiceRequest

	err := r.db.QueryRowxContext(ctx, constants.GetServiceRequestByID, id).StructScan(&req)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// ClaimRequest executes the conditional claim update. It must stay a single
// statement: the status guard in the WHERE clause is what resolves the race
// between two crew members. Returns ErrNoRowsAffected when the request was
// not open at update time (or does not exist; callers disambiguate).
func (r *RequestRepository) ClaimRequest(ctx context.Context, requestID, crewID string) (*entities.ServiceRequest, error) {

	var req entities.ServiceRequest

	err := r.db.QueryRowxContext(ctx, constants.ClaimServiceRequest, requestID, crewID).StructScan(&req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRowsAffected
		}
		return nil, err
	}

	return &req, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, requestID string, status constants.RequestStatus) (*entities.ServiceRequest, error) {

	var req entities.ServiceRequest

	err := r.db.QueryRowxContext(ctx, constants.UpdateServiceRequestStatus, requestID, status).StructScan(&req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoRowsAffected
		}
		return nil, err
	}

	return &req, nil
}

func (r *RequestRepository) ListByAirport(ctx context.Context, icao string) ([]entities.ServiceRequest, error) {
	var reqs []entities.ServiceRequest
	if err := r.db.SelectContext(ctx, &reqs, constants.ListRequestsByAirport, icao); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RequestRepository) ListByPilot(ctx context.Context, pilotID string) ([]entities.ServiceRequest, error) {
	var reqs []entities.ServiceRequest
	if err := r.db.SelectContext(ctx, &reqs, constants.ListRequestsByPilot, pilotID); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *RequestRepository) ListByCrew(ctx context.Context, crewID string) ([]entities.ServiceRequest, error) {
	var reqs []entities.ServiceRequest
	if err := r.db.SelectContext(ctx, &reqs, constants.ListRequestsByCrew, crewID); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListOpen lists open requests, optionally narrowed to one airport
func (r *RequestRepository) ListOpen(ctx context.Context, icao string) ([]entities.ServiceRequest, error) {
	var reqs []entities.ServiceRequest
	var err error
	if icao == "" {
		err = r.db.SelectContext(ctx, &reqs, constants.ListOpenRequests)
	} else {
		err = r.db.SelectContext(ctx, &reqs, constants.ListOpenRequestsByAirport, icao)
	}
	if err != nil {
		return nil, err
	}
	return reqs, nil
}
