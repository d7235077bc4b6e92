package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

// ErrExists: проект с таким именем уже есть.
var ErrExists = errors.New("project name already taken")

// Record соответствует строке таблицы projects.
type Record struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Document  Document `json:"document"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// Summary хранит запись без документа, для списков.
type Summary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init применяет все миграции из migrations по порядку имён.
func (r *Repository) Init(ctx context.Context, migrations fs.FS) error {
	if err := r.runMigrations(ctx, migrations); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Create(ctx context.Context, name string, doc Document) (*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name required")
	}
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, document)
        VALUES (?, ?, ?)
    `, id, name, string(data))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%w: %s", ErrExists, name)
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id string, doc Document) (*Record, error) {
	data, err := Marshal(doc)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
        UPDATE projects
        SET document = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `, string(data), id)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

// SaveByName обновляет проект с таким именем или создаёт новый.
func (r *Repository) SaveByName(ctx context.Context, name string, doc Document) (*Record, error) {
	existing, err := r.GetByName(ctx, name)
	if err == nil {
		return r.Update(ctx, existing.ID, doc)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return r.Create(ctx, name, doc)
}

func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, document, created_at, updated_at
        FROM projects
        WHERE id = ?
    `, id)
	return scanRecord(row)
}

func (r *Repository) GetByName(ctx context.Context, name string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, document, created_at, updated_at
        FROM projects
        WHERE name = ?
    `, strings.TrimSpace(name))
	return scanRecord(row)
}

func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, created_at, updated_at
        FROM projects
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row *sql.Row) (*Record, error) {
	var (
		rec  Record
		data string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doc, err := Unmarshal([]byte(data))
	if err != nil {
		return nil, err
	}
	rec.Document = doc
	return &rec, nil
}

// Ping проверяет соединение с базой (для readiness probe).
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrations fs.FS) error {
	names, err := fs.Glob(migrations, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
