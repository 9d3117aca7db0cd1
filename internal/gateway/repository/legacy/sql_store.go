package legacy

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"metabridge/internal/gateway/entity"
)

// Legacy table and column names.
const (
	tableResource    = "resource"
	tableAgent       = "resourceagent"
	tableRole        = "role"
	tableAffiliation = "affiliation"
	tableContactInfo = "contactinfo"

	colID             = "id"
	colResourceID     = "resource_id"
	colOrder          = "order"
	colName           = "name"
	colFirstName      = "firstname"
	colLastName       = "lastname"
	colIdentifier     = "identifier"
	colIdentifierType = "identifiertype"
	colAgentResource  = "resourceagent_resource_id"
	colAgentOrder     = "resourceagent_order"
	colRole           = "role"
	colEmail          = "email"
	colWebsite        = "website"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

type SQLConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	QueryTimeout time.Duration
}

// SQLStore reads the legacy tables through database/sql, building dialect
// specific SELECTs with ent's SQL builder. It never writes.
type SQLStore struct {
	db      *sql.DB
	drv     *entsql.Driver
	timeout time.Duration
}

// Open connects to the legacy database and verifies the connection.
func Open(ctx context.Context, cfg SQLConfig) (*SQLStore, error) {
	driver := strings.TrimSpace(cfg.Driver)
	if driver == "" {
		driver = DriverPostgres
	}
	dialectName, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	s := NewSQLStore(db, dialectName, cfg.QueryTimeout)
	if err := s.Ping(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach legacy db: %w", err)
	}
	return s, nil
}

// NewSQLStore wraps an already opened database.
func NewSQLStore(db *sql.DB, dialectName string, timeout time.Duration) *SQLStore {
	return &SQLStore{
		db:      db,
		drv:     entsql.OpenDB(dialectName, db),
		timeout: timeout,
	}
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return dialect.Postgres, nil
	case DriverSQLite:
		return dialect.SQLite, nil
	default:
		return "", fmt.Errorf("unsupported legacy db driver %q", driver)
	}
}

func (s *SQLStore) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.drv.Close()
}

func (s *SQLStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SQLStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.drv.Dialect())
}

// rowOrder is the physical row position of t, used to break ties on the
// legacy order columns so rows come back in the order they were stored.
func (s *SQLStore) rowOrder(t *entsql.SelectTable) string {
	if s.drv.Dialect() == dialect.Postgres {
		return t.C("ctid")
	}
	return t.C("rowid")
}

// query runs sel and hands every row to scan.
func (s *SQLStore) query(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	query, args := sel.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *SQLStore) DatasetExists(ctx context.Context, id entity.DatasetID) (bool, error) {
	b := s.builder()
	t := b.Table(tableResource)
	sel := b.Select(t.C(colID)).
		From(t).
		Where(entsql.EQ(t.C(colID), id.Int64())).
		Limit(1)
	found := false
	err := s.query(ctx, sel, func(*entsql.Rows) error {
		found = true
		return nil
	})
	if err != nil {
		return false, queryErr("dataset lookup", id, err)
	}
	return found, nil
}

func (s *SQLStore) Agents(ctx context.Context, id entity.DatasetID) ([]entity.LegacyAgent, error) {
	b := s.builder()
	t := b.Table(tableAgent)
	sel := b.Select(
		t.C(colOrder),
		t.C(colName),
		t.C(colFirstName),
		t.C(colLastName),
		t.C(colIdentifier),
		t.C(colIdentifierType),
	).
		From(t).
		Where(entsql.EQ(t.C(colResourceID), id.Int64())).
		OrderBy(t.C(colOrder), s.rowOrder(t))

	out := make([]entity.LegacyAgent, 0, 8)
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			a                                   entity.LegacyAgent
			name, first, last, ident, identType sql.NullString
		)
		if err := rows.Scan(&a.Order, &name, &first, &last, &ident, &identType); err != nil {
			return err
		}
		a.ResourceID = id
		a.Name = name.String
		a.FirstName = first.String
		a.LastName = last.String
		a.Identifier = ident.String
		a.IdentifierType = identType.String
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, queryErr("agents", id, err)
	}
	return out, nil
}

func (s *SQLStore) Roles(ctx context.Context, id entity.DatasetID) ([]entity.LegacyRole, error) {
	b := s.builder()
	t := b.Table(tableRole)
	sel := b.Select(t.C(colAgentOrder), t.C(colRole)).
		From(t).
		Where(entsql.EQ(t.C(colAgentResource), id.Int64())).
		OrderBy(t.C(colAgentOrder), s.rowOrder(t))

	out := make([]entity.LegacyRole, 0, 8)
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			r    entity.LegacyRole
			role sql.NullString
		)
		if err := rows.Scan(&r.AgentOrder, &role); err != nil {
			return err
		}
		r.ResourceID = id
		r.Role = role.String
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, queryErr("roles", id, err)
	}
	return out, nil
}

func (s *SQLStore) Affiliations(ctx context.Context, id entity.DatasetID) ([]entity.LegacyAffiliation, error) {
	b := s.builder()
	t := b.Table(tableAffiliation)
	sel := b.Select(
		t.C(colAgentOrder),
		t.C(colOrder),
		t.C(colName),
		t.C(colIdentifier),
		t.C(colIdentifierType),
	).
		From(t).
		Where(entsql.EQ(t.C(colAgentResource), id.Int64())).
		OrderBy(t.C(colAgentOrder), t.C(colOrder), s.rowOrder(t))

	out := make([]entity.LegacyAffiliation, 0, 8)
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			a                      entity.LegacyAffiliation
			name, ident, identType sql.NullString
		)
		if err := rows.Scan(&a.AgentOrder, &a.SubOrder, &name, &ident, &identType); err != nil {
			return err
		}
		a.ResourceID = id
		a.Name = name.String
		a.Identifier = ident.String
		a.IdentifierType = identType.String
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, queryErr("affiliations", id, err)
	}
	return out, nil
}

func (s *SQLStore) ContactInfo(ctx context.Context, id entity.DatasetID) ([]entity.LegacyContactInfo, error) {
	b := s.builder()
	t := b.Table(tableContactInfo)
	sel := b.Select(t.C(colAgentOrder), t.C(colEmail), t.C(colWebsite), t.C(colName)).
		From(t).
		Where(entsql.EQ(t.C(colAgentResource), id.Int64())).
		OrderBy(t.C(colAgentOrder), s.rowOrder(t))

	out := make([]entity.LegacyContactInfo, 0, 4)
	err := s.query(ctx, sel, func(rows *entsql.Rows) error {
		var (
			c                    entity.LegacyContactInfo
			email, website, name sql.NullString
		)
		if err := rows.Scan(&c.AgentOrder, &email, &website, &name); err != nil {
			return err
		}
		c.ResourceID = id
		c.Email = strings.TrimSpace(email.String)
		c.Website = strings.TrimSpace(website.String)
		c.Name = name.String
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, queryErr("contact info", id, err)
	}
	return out, nil
}
