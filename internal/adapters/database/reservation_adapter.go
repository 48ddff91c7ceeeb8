package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	"github.com/medroute/emergency-routing/internal/infrastructure/clients/postgres"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

// ReservationAdapter implements the ReservationRepository interface
type ReservationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReservationAdapter creates a new reservation adapter
func NewReservationAdapter(client *postgres.Client) repositories.ReservationRepository {
	return &ReservationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new reservation
func (a *ReservationAdapter) Create(ctx context.Context, reservation *entities.BedReservation) error {
	record := goqu.Record{
		"id":                reservation.ID,
		"hospital_id":       reservation.HospitalID,
		"patient_name":      reservation.PatientName,
		"patient_phone":     reservation.PatientPhone,
		"care_type":         string(reservation.CareType),
		"bed_count":         reservation.BedCount,
		"estimated_arrival": reservation.EstimatedArrival,
		"confidence":        reservation.Confidence,
		"status":            string(reservation.Status),
		"notes":             reservation.Notes,
		"created_at":        reservation.CreatedAt,
		"updated_at":        reservation.UpdatedAt,
	}

	query, args, err := a.db.Insert("bed_reservations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create reservation", err)
	}
	return nil
}

// GetByID retrieves a reservation by ID
func (a *ReservationAdapter) GetByID(ctx context.Context, id string) (*entities.BedReservation, error) {
	query, args, err := a.db.Select(
		"id", "hospital_id", "patient_name", "patient_phone", "care_type",
		"bed_count", "estimated_arrival", "confidence", "status", "notes",
		"created_at", "updated_at",
	).From("bed_reservations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	reservation := &entities.BedReservation{}
	var careType, status string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.HospitalID,
		&reservation.PatientName,
		&reservation.PatientPhone,
		&careType,
		&reservation.BedCount,
		&reservation.EstimatedArrival,
		&reservation.Confidence,
		&status,
		&reservation.Notes,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("reservation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get reservation", err)
	}
	reservation.CareType = entities.CareType(careType)
	reservation.Status = entities.ReservationStatus(status)

	return reservation, nil
}

// ListByHospital retrieves reservations for a hospital
func (a *ReservationAdapter) ListByHospital(ctx context.Context, hospitalID string) ([]*entities.BedReservation, error) {
	query, args, err := a.db.Select(
		"id", "hospital_id", "patient_name", "patient_phone", "care_type",
		"bed_count", "estimated_arrival", "confidence", "status", "notes",
		"created_at", "updated_at",
	).From("bed_reservations").
		Where(goqu.Ex{"hospital_id": hospitalID}).
		Order(goqu.C("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reservations", err)
	}
	defer rows.Close()

	reservations := []*entities.BedReservation{}
	for rows.Next() {
		reservation := &entities.BedReservation{}
		var careType, status string
		err := rows.Scan(
			&reservation.ID,
			&reservation.HospitalID,
			&reservation.PatientName,
			&reservation.PatientPhone,
			&careType,
			&reservation.BedCount,
			&reservation.EstimatedArrival,
			&reservation.Confidence,
			&status,
			&reservation.Notes,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan reservation", err)
		}
		reservation.CareType = entities.CareType(careType)
		reservation.Status = entities.ReservationStatus(status)
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating reservations", err)
	}

	return reservations, nil
}

// UpdateStatus updates the status of a reservation
func (a *ReservationAdapter) UpdateStatus(ctx context.Context, id string, status entities.ReservationStatus) error {
	query, args, err := a.db.Update("bed_reservations").
		Set(goqu.Record{
			"status":     string(status),
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update reservation", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("reservation with id %s not found", id))
	}
	return nil
}
