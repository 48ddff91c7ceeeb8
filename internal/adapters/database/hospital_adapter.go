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

// HospitalAdapter implements the HospitalRepository interface on PostgreSQL.
// Hospitals and their bed departments live in two tables; only total and
// available counts are stored, occupancy is derived on load.
type HospitalAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(client *postgres.Client) repositories.HospitalRepository {
	return &HospitalAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func hospitalRecord(hospital *entities.Hospital) goqu.Record {
	return goqu.Record{
		"id":            hospital.ID,
		"name":          hospital.Name,
		"location":      hospital.Location,
		"address":       hospital.Address,
		"latitude":      hospital.Coordinates.Latitude,
		"longitude":     hospital.Coordinates.Longitude,
		"phone":         hospital.Phone,
		"oxygen_supply": hospital.OxygenSupply,
		"er_load":       hospital.ERLoad,
		"status":        string(hospital.Status),
		"created_at":    hospital.CreatedAt,
		"updated_at":    hospital.UpdatedAt,
	}
}

func bedRecords(hospital *entities.Hospital) []goqu.Record {
	records := make([]goqu.Record, 0, len(hospital.Beds))
	for _, category := range entities.AllBedCategories {
		department, ok := hospital.Beds[category]
		if !ok {
			continue
		}
		records = append(records, goqu.Record{
			"hospital_id": hospital.ID,
			"category":    string(category),
			"name":        department.Name,
			"total":       department.Total,
			"available":   department.Available,
		})
	}
	return records
}

// Create registers a new hospital and its bed departments
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	now := time.Now()
	if hospital.CreatedAt.IsZero() {
		hospital.CreatedAt = now
	}
	hospital.UpdatedAt = now

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	query, args, err := a.db.Insert("hospitals").Rows(hospitalRecord(hospital)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create hospital", err)
	}

	if err := a.insertBeds(ctx, tx, hospital); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

func (a *HospitalAdapter) insertBeds(ctx context.Context, tx *sql.Tx, hospital *entities.Hospital) error {
	records := bedRecords(hospital)
	if len(records) == 0 {
		return nil
	}
	query, args, err := a.db.Insert("hospital_beds").Rows(records).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bed insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create hospital beds", err)
	}
	return nil
}

// GetByID retrieves a hospital and its bed departments by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	query, args, err := a.db.Select(
		"id", "name", "location", "address", "latitude", "longitude",
		"phone", "oxygen_supply", "er_load", "status", "created_at", "updated_at",
	).From("hospitals").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	hospital := &entities.Hospital{}
	var status string
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&hospital.ID,
		&hospital.Name,
		&hospital.Location,
		&hospital.Address,
		&hospital.Coordinates.Latitude,
		&hospital.Coordinates.Longitude,
		&hospital.Phone,
		&hospital.OxygenSupply,
		&hospital.ERLoad,
		&status,
		&hospital.CreatedAt,
		&hospital.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get hospital", err)
	}
	hospital.Status = entities.HospitalStatus(status)

	beds, err := a.loadBeds(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	hospital.Beds = beds[id]

	return hospital, nil
}

func (a *HospitalAdapter) loadBeds(ctx context.Context, hospitalIDs []string) (map[string]map[entities.BedCategory]entities.BedDepartment, error) {
	query, args, err := a.db.Select(
		"hospital_id", "category", "name", "total", "available",
	).From("hospital_beds").
		Where(goqu.Ex{"hospital_id": hospitalIDs}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bed query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load hospital beds", err)
	}
	defer rows.Close()

	beds := make(map[string]map[entities.BedCategory]entities.BedDepartment)
	for rows.Next() {
		var hospitalID, category, name string
		var total, available int
		if err := rows.Scan(&hospitalID, &category, &name, &total, &available); err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital bed", err)
		}
		if beds[hospitalID] == nil {
			beds[hospitalID] = make(map[entities.BedCategory]entities.BedDepartment)
		}
		beds[hospitalID][entities.BedCategory(category)] = entities.NewBedDepartment(name, total, available)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospital beds", err)
	}

	return beds, nil
}

// Update updates a hospital and replaces its bed departments
func (a *HospitalAdapter) Update(ctx context.Context, hospital *entities.Hospital) error {
	hospital.UpdatedAt = time.Now()

	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	record := hospitalRecord(hospital)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("hospitals").
		Set(record).
		Where(goqu.Ex{"id": hospital.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update hospital", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", hospital.ID))
	}

	deleteQuery, deleteArgs, err := a.db.Delete("hospital_beds").
		Where(goqu.Ex{"hospital_id": hospital.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bed delete query", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return apperrors.NewInternalError("failed to clear hospital beds", err)
	}

	if err := a.insertBeds(ctx, tx, hospital); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

// Upsert creates the hospital if absent, updates it otherwise
func (a *HospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	if _, err := a.GetByID(ctx, hospital.ID); err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return a.Create(ctx, hospital)
		}
		return err
	}
	return a.Update(ctx, hospital)
}

// Delete removes a hospital and its bed departments
func (a *HospitalAdapter) Delete(ctx context.Context, id string) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	bedQuery, bedArgs, err := a.db.Delete("hospital_beds").
		Where(goqu.Ex{"hospital_id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build bed delete query", err)
	}
	if _, err := tx.ExecContext(ctx, bedQuery, bedArgs...); err != nil {
		return apperrors.NewInternalError("failed to delete hospital beds", err)
	}

	query, args, err := a.db.Delete("hospitals").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete hospital", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("hospital with id %s not found", id))
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

// List retrieves hospitals with filters, bed departments included
func (a *HospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.db.Select(
		"id", "name", "location", "address", "latitude", "longitude",
		"phone", "oxygen_supply", "er_load", "status", "created_at", "updated_at",
	).From("hospitals").
		Order(goqu.C("created_at").Desc())

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list hospitals", err)
	}
	defer rows.Close()

	hospitals := []*entities.Hospital{}
	ids := []string{}
	for rows.Next() {
		hospital := &entities.Hospital{}
		var status string
		err := rows.Scan(
			&hospital.ID,
			&hospital.Name,
			&hospital.Location,
			&hospital.Address,
			&hospital.Coordinates.Latitude,
			&hospital.Coordinates.Longitude,
			&hospital.Phone,
			&hospital.OxygenSupply,
			&hospital.ERLoad,
			&status,
			&hospital.CreatedAt,
			&hospital.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan hospital", err)
		}
		hospital.Status = entities.HospitalStatus(status)
		hospitals = append(hospitals, hospital)
		ids = append(ids, hospital.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating hospitals", err)
	}

	if len(ids) > 0 {
		beds, err := a.loadBeds(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, hospital := range hospitals {
			hospital.Beds = beds[hospital.ID]
		}
	}

	return hospitals, nil
}
