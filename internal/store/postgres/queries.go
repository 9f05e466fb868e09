package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/store"
)

// productColumns is the column list used for SELECT statements on the products table.
const productColumns = `id, name, type, batch_id, harvest_date, origin_farm_id, origin_farm_name,
	current_location, destination, status, tracking_history, created_at, updated_at`

// farmColumns is the column list used for SELECT statements on the farms table.
const farmColumns = `id, name, location, owner, contact_info, description, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateProduct(ctx context.Context, db executor, p *model.Product) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, type, batch_id, harvest_date, origin_farm_id, origin_farm_name,
			current_location, destination, status, tracking_history, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13
		)`,
		p.ID,
		p.Name,
		p.Type,
		p.BatchID,
		p.HarvestDate,
		p.OriginFarmID,
		nullString(p.OriginFarmName),
		nullString(p.CurrentLocation),
		nullString(p.Destination),
		nullString(p.Status),
		historyBytes(p.TrackingHistory),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetProduct(ctx context.Context, db executor, id string) (*model.Product, error) {
	row := db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return p, err
}

func queryListProducts(ctx context.Context, db executor, filter model.ProductFilter) ([]*model.Product, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Name != "" {
		whereClauses = append(whereClauses, "name ILIKE "+nextArg())
		args = append(args, "%"+filter.Name+"%")
	}
	if filter.Type != "" {
		whereClauses = append(whereClauses, "LOWER(type) = LOWER("+nextArg()+")")
		args = append(args, filter.Type)
	}
	if filter.BatchID != "" {
		whereClauses = append(whereClauses, "LOWER(batch_id) = LOWER("+nextArg()+")")
		args = append(args, filter.BatchID)
	}
	if filter.OriginFarmID != "" {
		whereClauses = append(whereClauses, "origin_farm_id = "+nextArg())
		args = append(args, filter.OriginFarmID)
	}
	if filter.Status != "" {
		whereClauses = append(whereClauses, "LOWER(status) = LOWER("+nextArg()+")")
		args = append(args, filter.Status)
	}

	query := `SELECT COUNT(*) OVER () AS total_count, ` + productColumns + ` FROM products`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY " + sortClause(filter.Sort, filter.SortDesc)

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		products []*model.Product
		total    int
	)
	for rows.Next() {
		p, n, err := scanProductWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		total = n
		products = append(products, p)
	}
	return products, total, rows.Err()
}

// sortClause maps a requested sort field to a whitelisted column,
// defaulting to name ascending.
func sortClause(field string, desc bool) string {
	col := "name"
	switch strings.ToLower(field) {
	case "", "name":
	case "type":
		col = "type"
	case "batchid", "batch_id":
		col = "batch_id"
	case "harvestdate", "harvest_date":
		col = "harvest_date"
	case "status":
		col = "status"
	case "createdat", "created_at":
		col = "created_at"
	case "updatedat", "updated_at":
		col = "updated_at"
	}
	if desc {
		return col + " DESC"
	}
	return col + " ASC"
}

func queryUpdateProduct(ctx context.Context, db executor, p *model.Product) error {
	res, err := db.ExecContext(ctx, `
		UPDATE products SET
			name = $2, type = $3, batch_id = $4, harvest_date = $5,
			origin_farm_id = $6, origin_farm_name = $7, current_location = $8,
			destination = $9, status = $10, tracking_history = $11, updated_at = $12
		WHERE id = $1`,
		p.ID,
		p.Name,
		p.Type,
		p.BatchID,
		p.HarvestDate,
		p.OriginFarmID,
		nullString(p.OriginFarmName),
		nullString(p.CurrentLocation),
		nullString(p.Destination),
		nullString(p.Status),
		historyBytes(p.TrackingHistory),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func queryDeleteProduct(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func queryCreateFarm(ctx context.Context, db executor, f *model.Farm) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO farms (
			id, name, location, owner, contact_info, description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		f.ID,
		f.Name,
		f.Location,
		f.Owner,
		nullString(f.ContactInfo),
		nullString(f.Description),
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func queryGetFarm(ctx context.Context, db executor, id string) (*model.Farm, error) {
	row := db.QueryRowContext(ctx, `SELECT `+farmColumns+` FROM farms WHERE id = $1`, id)
	f, err := scanFarm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return f, err
}

func queryListFarms(ctx context.Context, db executor) ([]*model.Farm, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+farmColumns+` FROM farms ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var farms []*model.Farm
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, err
		}
		farms = append(farms, f)
	}
	return farms, rows.Err()
}

func queryUpdateFarm(ctx context.Context, db executor, f *model.Farm) error {
	res, err := db.ExecContext(ctx, `
		UPDATE farms SET
			name = $2, location = $3, owner = $4, contact_info = $5,
			description = $6, updated_at = $7
		WHERE id = $1`,
		f.ID,
		f.Name,
		f.Location,
		f.Owner,
		nullString(f.ContactInfo),
		nullString(f.Description),
		f.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

func queryDeleteFarm(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM farms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(res)
}

// ensureAffected converts a zero-row UPDATE/DELETE into store.ErrNotFound.
func ensureAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
