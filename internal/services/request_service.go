package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ground-experiment/groundlink/internal/apperrors"
	"ground-experiment/groundlink/internal/constants"
	"ground-experiment/groundlink/internal/db/repositories"
	"ground-experiment/groundlink/internal/logging"
	"ground-experiment/groundlink/internal/models/dtos"
	"ground-experiment/groundlink/internal/models/entities"
)

// RequestStore is the persistence surface the lifecycle manager needs
type RequestStore interface {
	InsertRequest(ctx context.Context, req *entities.ServiceRequest) error
	FindRequestByID(ctx context.Context, id string) (*entities.ServiceRequest, error)
	ClaimRequest(ctx context.Context, requestID, crewID string) (*entities.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status constants.RequestStatus) (*entities.ServiceRequest, error)
	ListByAirport(ctx context.Context, icao string) ([]entities.ServiceRequest, error)
	ListByPilot(ctx context.Context, pilotID string) ([]entities.ServiceRequest, error)
	ListByCrew(ctx context.Context, crewID string) ([]entities.ServiceRequest, error)
	ListOpen(ctx context.Context, icao string) ([]entities.ServiceRequest, error)
}

// EventBroadcaster pushes an event to every connected subscriber
type EventBroadcaster interface {
	Broadcast(event dtos.Event)
}

// RequestService owns the ground-service request state machine. The store
// mutation always completes before the corresponding event is emitted, so
// subscribers never observe an event for a change that is not yet readable.
type RequestService struct {
	store RequestStore
	hub   EventBroadcaster
}

func NewRequestService(store RequestStore, hub EventBroadcaster) *RequestService {
	return &RequestService{
		store: store,
		hub:   hub,
	}
}

// CreateRequest validates and files a new request with status open
func (s *RequestService) CreateRequest(ctx context.Context, pilotID string, in *dtos.CreateServiceRequestReq) (*entities.ServiceRequest, error) {
	if err := validateCreateRequest(in); err != nil {
		return nil, err
	}

	req := &entities.ServiceRequest{
		PilotID:      pilotID,
		AirportICAO:  strings.ToUpper(strings.TrimSpace(in.AirportICAO)),
		ServiceType:  constants.ServiceType(in.ServiceType),
		Gate:         strings.TrimSpace(in.Gate),
		FlightNumber: strings.TrimSpace(in.FlightNumber),
		Aircraft:     in.Aircraft,
		Description:  strings.TrimSpace(in.Description),
	}

	if err := s.store.InsertRequest(ctx, req); err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("insert request: %w", err))
	}

	s.hub.Broadcast(dtos.Event{Type: dtos.EventNewRequest, Data: req})

	logging.Info("Service request created",
		"request_id", req.ID,
		"airport", req.AirportICAO,
		"service_type", req.ServiceType.String(),
	)

	return req, nil
}

// ClaimRequest atomically moves an open request to claimed and assigns the
// crew member. Two concurrent claims resolve to exactly one winner; the
// loser gets a claim conflict, never a silent success.
func (s *RequestService) ClaimRequest(ctx context.Context, requestID, crewID string) (*entities.ServiceRequest, error) {
	req, err := s.store.ClaimRequest(ctx, requestID, crewID)
	if err == nil {
		s.hub.Broadcast(dtos.Event{Type: dtos.EventRequestClaimed, Data: req})

		logging.Info("Service request claimed",
			"request_id", req.ID,
			"crew_id", crewID,
		)
		return req, nil
	}

	if !errors.Is(err, repositories.ErrNoRowsAffected) {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("claim request: %w", err))
	}

	// The conditional update matched nothing. Distinguish a missing request
	// from one another crew member already claimed.
	if _, err := s.store.FindRequestByID(ctx, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service request not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("fetch request after claim miss: %w", err))
	}

	return nil, apperrors.ClaimConflict("request already claimed")
}

// UpdateStatus transitions a request along the allowed edge set. Only the
// assigned crew member may advance a request; cancellation is open to the
// requesting pilot as well.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID, callerID string, newStatus constants.RequestStatus) (*entities.ServiceRequest, error) {
	if !newStatus.IsValid() {
		return nil, apperrors.Validation("unknown status: " + newStatus.String())
	}
	if newStatus == constants.StatusOpen || newStatus == constants.StatusClaimed {
		// open is the creation state and claimed is reachable only through
		// the claim operation
		return nil, apperrors.InvalidTransition("status " + newStatus.String() + " cannot be set directly")
	}

	current, err := s.store.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service request not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("fetch request: %w", err))
	}

	if !constants.CanTransition(current.Status, newStatus) {
		return nil, apperrors.InvalidTransition(
			fmt.Sprintf("cannot move request from %s to %s", current.Status, newStatus))
	}

	if err := authorizeTransition(current, callerID, newStatus); err != nil {
		return nil, err
	}

	req, err := s.store.UpdateRequestStatus(ctx, requestID, newStatus)
	if err != nil {
		if errors.Is(err, repositories.ErrNoRowsAffected) {
			return nil, apperrors.NotFound("service request not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("update request status: %w", err))
	}

	s.hub.Broadcast(dtos.Event{Type: dtos.EventRequestStatusUpdated, Data: req})

	logging.Info("Service request status updated",
		"request_id", req.ID,
		"status", req.Status.String(),
	)

	return req, nil
}

// GetRequest fetches one request by id
func (s *RequestService) GetRequest(ctx context.Context, requestID string) (*entities.ServiceRequest, error) {
	req, err := s.store.FindRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("service request not found")
		}
		return nil, apperrors.StoreUnavailable(fmt.Errorf("fetch request: %w", err))
	}
	return req, nil
}

// ListRequests resolves the role/airport listing the dashboard asks for:
// the caller's own requests as pilot, the caller's claimed work as crew,
// everything at one airport, or all open requests.
func (s *RequestService) ListRequests(ctx context.Context, callerID, airport string, role constants.RequestRole) ([]entities.ServiceRequest, error) {
	var (
		reqs []entities.ServiceRequest
		err  error
	)

	switch {
	case role == constants.RolePilot:
		reqs, err = s.store.ListByPilot(ctx, callerID)
	case role == constants.RoleCrew:
		reqs, err = s.store.ListByCrew(ctx, callerID)
	case airport != "":
		reqs, err = s.store.ListByAirport(ctx, strings.ToUpper(airport))
	default:
		reqs, err = s.store.ListOpen(ctx, "")
	}

	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("list requests: %w", err))
	}
	return reqs, nil
}

// ListOpenRequests lists open requests, optionally narrowed to one airport
func (s *RequestService) ListOpenRequests(ctx context.Context, airport string) ([]entities.ServiceRequest, error) {
	reqs, err := s.store.ListOpen(ctx, strings.ToUpper(airport))
	if err != nil {
		return nil, apperrors.StoreUnavailable(fmt.Errorf("list open requests: %w", err))
	}
	return reqs, nil
}

func validateCreateRequest(in *dtos.CreateServiceRequestReq) error {
	switch {
	case strings.TrimSpace(in.AirportICAO) == "":
		return apperrors.Validation("airportIcao is required")
	case strings.TrimSpace(in.Gate) == "":
		return apperrors.Validation("gate is required")
	case strings.TrimSpace(in.FlightNumber) == "":
		return apperrors.Validation("flightNumber is required")
	case strings.TrimSpace(in.Description) == "":
		return apperrors.Validation("description is required")
	}

	if !constants.ServiceType(in.ServiceType).IsValid() {
		return apperrors.Validation("unknown serviceType: " + in.ServiceType)
	}
	return nil
}

func authorizeTransition(req *entities.ServiceRequest, callerID string, newStatus constants.RequestStatus) error {
	isPilot := req.PilotID == callerID
	isCrew := req.GroundCrewID != nil && *req.GroundCrewID == callerID

	if newStatus == constants.StatusCancelled {
		if !isPilot && !isCrew {
			return apperrors.Forbidden("only the requesting pilot or assigned crew may cancel")
		}
		return nil
	}

	if !isCrew {
		return apperrors.Forbidden("only the assigned crew member may update this request")
	}
	return nil
}
