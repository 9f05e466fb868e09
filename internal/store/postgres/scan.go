package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/agritrace/supplytrace/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanProduct scans a single row into a model.Product.
// The row must contain columns in the order defined by productColumns.
func scanProduct(row scannable) (*model.Product, error) {
	var p model.Product
	var (
		originFarmName  sql.NullString
		currentLocation sql.NullString
		destination     sql.NullString
		status          sql.NullString
		history         []byte
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Type,
		&p.BatchID,
		&p.HarvestDate,
		&p.OriginFarmID,
		&originFarmName,
		&currentLocation,
		&destination,
		&status,
		&history,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.OriginFarmName = originFarmName.String
	p.CurrentLocation = currentLocation.String
	p.Destination = destination.String
	p.Status = status.String

	if err := unmarshalHistory(history, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// scanProductWithTotal scans a row with a leading total_count column.
func scanProductWithTotal(row scannable) (*model.Product, int, error) {
	var p model.Product
	var (
		total           int
		originFarmName  sql.NullString
		currentLocation sql.NullString
		destination     sql.NullString
		status          sql.NullString
		history         []byte
	)

	err := row.Scan(
		&total,
		&p.ID,
		&p.Name,
		&p.Type,
		&p.BatchID,
		&p.HarvestDate,
		&p.OriginFarmID,
		&originFarmName,
		&currentLocation,
		&destination,
		&status,
		&history,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	p.OriginFarmName = originFarmName.String
	p.CurrentLocation = currentLocation.String
	p.Destination = destination.String
	p.Status = status.String

	if err := unmarshalHistory(history, &p); err != nil {
		return nil, 0, err
	}
	return &p, total, nil
}

// scanFarm scans a single row into a model.Farm.
func scanFarm(row scannable) (*model.Farm, error) {
	var f model.Farm
	var (
		contactInfo sql.NullString
		description sql.NullString
	)

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Location,
		&f.Owner,
		&contactInfo,
		&description,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	f.ContactInfo = contactInfo.String
	f.Description = description.String
	return &f, nil
}

func unmarshalHistory(data []byte, p *model.Product) error {
	p.TrackingHistory = []model.TrackingStage{}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &p.TrackingHistory); err != nil {
		return fmt.Errorf("unmarshal tracking history for %s: %w", p.ID, err)
	}
	return nil
}

// historyBytes marshals a tracking history for the JSONB column.
// An empty history is stored as an empty JSON array, never NULL.
func historyBytes(history []model.TrackingStage) []byte {
	if len(history) == 0 {
		return []byte("[]")
	}
	data, err := json.Marshal(history)
	if err != nil {
		// TrackingStage contains only marshalable fields; this cannot
		// happen with well-formed input.
		return []byte("[]")
	}
	return data
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
