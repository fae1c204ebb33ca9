package repo

import (
	"context"
	"database/sql"
	"encoding/json"

	association "Facade/internal/calc/association"
	params "Facade/internal/calc/params"
)

// Preset is one named parameter set with its baseline references. The
// dataset is read-only for the engine; only the seed tool writes it.
type Preset struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Params   params.Set           `json:"params"`
	Baseline association.Baseline `json:"baseline"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	ListPresets(ctx context.Context) ([]Preset, error)
	GetPreset(ctx context.Context, id string) (Preset, error)
	SavePreset(ctx context.Context, p Preset) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) ListPresets(ctx context.Context) ([]Preset, error) {
	query := "SELECT id, name, params, baseline FROM presets ORDER BY id"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Preset
	for rows.Next() {
		p, err := scanPreset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetPreset(ctx context.Context, id string) (Preset, error) {
	query := "SELECT id, name, params, baseline FROM presets WHERE id=$1"
	return scanPreset(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) SavePreset(ctx context.Context, p Preset) error {
	paramsJSON, err := json.Marshal(p.Params)
	if err != nil {
		return err
	}
	baselineJSON, err := json.Marshal(p.Baseline)
	if err != nil {
		return err
	}
	query := `INSERT INTO presets (id, name, params, baseline) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name=$2, params=$3, baseline=$4`
	_, err = r.db.ExecContext(ctx, query, p.ID, p.Name, paramsJSON, baselineJSON)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPreset(row rowScanner) (Preset, error) {
	var p Preset
	var paramsJSON, baselineJSON []byte
	if err := row.Scan(&p.ID, &p.Name, &paramsJSON, &baselineJSON); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal(paramsJSON, &p.Params); err != nil {
		return Preset{}, err
	}
	if err := json.Unmarshal(baselineJSON, &p.Baseline); err != nil {
		return Preset{}, err
	}
	return p, nil
}
