// Package postgres provides a dataset store persisted in PostgreSQL.
//
// The working snapshot stays in memory behind the same single-writer
// discipline as the memory store; every successful update is flushed
// inside one transaction (config upsert plus full replace of the
// entity/field/record tables). The dataset is small by design, so
// whole-snapshot persistence keeps the store boundary identical across
// adapters.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"fieldbook/internal/core/model"
	"fieldbook/internal/domain/dataset"
)

var tracer = otel.Tracer("fieldbook/storage/postgres")

// Compile-time check that Store implements dataset.Store.
var _ dataset.Store = (*Store)(nil)

// Store is the PostgreSQL-backed dataset store.
type Store struct {
	mu   sync.RWMutex
	snap *model.Snapshot
	pool *pgxpool.Pool
}

// Open connects, ensures the schema and loads the current snapshot.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	snap, err := s.load(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	s.snap = snap
	return s, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// View implements dataset.Store.
func (s *Store) View(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.snap)
}

// Update implements dataset.Store.
func (s *Store) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.snap = next
	return nil
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

const schema = `
CREATE TABLE IF NOT EXISTS fb_config (
    id   smallint PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    doc  jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS fb_entities (
    pos    integer PRIMARY KEY,
    id     text NOT NULL,
    name   text NOT NULL,
    fields jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS fb_fields (
    pos integer PRIMARY KEY,
    id  text NOT NULL,
    doc jsonb NOT NULL
);
CREATE TABLE IF NOT EXISTS fb_records (
    pos       integer PRIMARY KEY,
    id        text NOT NULL,
    entity_id text NOT NULL,
    ts        timestamptz NOT NULL,
    data      jsonb NOT NULL
);
`

func (s *Store) ensureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

type entityRow struct {
	Pos    int    `db:"pos"`
	ID     string `db:"id"`
	Name   string `db:"name"`
	Fields []byte `db:"fields"`
}

type fieldRow struct {
	Pos int    `db:"pos"`
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

type recordRow struct {
	Pos      int       `db:"pos"`
	ID       string    `db:"id"`
	EntityID string    `db:"entity_id"`
	TS       time.Time `db:"ts"`
	Data     []byte    `db:"data"`
}

// load reads the full snapshot, preserving stored order.
func (s *Store) load(ctx context.Context) (*model.Snapshot, error) {
	snap := model.NewSnapshot()

	var configDocs [][]byte
	sql, args, err := builder().Select("doc").From("fb_config").Where(squirrel.Eq{"id": 1}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build config select: %w", err)
	}
	if err := pgxscan.Select(ctx, s.pool, &configDocs, sql, args...); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if len(configDocs) > 0 {
		if err := json.Unmarshal(configDocs[0], &snap.Config); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	var entities []entityRow
	sql, args, err = builder().Select("pos", "id", "name", "fields").
		From("fb_entities").OrderBy("pos").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entities select: %w", err)
	}
	if err := pgxscan.Select(ctx, s.pool, &entities, sql, args...); err != nil {
		return nil, fmt.Errorf("load entities: %w", err)
	}
	for _, row := range entities {
		e := &model.Entity{ID: row.ID, Name: row.Name, Fields: []string{}}
		if err := json.Unmarshal(row.Fields, &e.Fields); err != nil {
			return nil, fmt.Errorf("decode entity %s fields: %w", row.ID, err)
		}
		snap.Entities = append(snap.Entities, e)
	}

	var fields []fieldRow
	sql, args, err = builder().Select("pos", "id", "doc").
		From("fb_fields").OrderBy("pos").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fields select: %w", err)
	}
	if err := pgxscan.Select(ctx, s.pool, &fields, sql, args...); err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	for _, row := range fields {
		var f model.Field
		if err := json.Unmarshal(row.Doc, &f); err != nil {
			return nil, fmt.Errorf("decode field %s: %w", row.ID, err)
		}
		snap.Fields = append(snap.Fields, &f)
	}

	var records []recordRow
	sql, args, err = builder().Select("pos", "id", "entity_id", "ts", "data").
		From("fb_records").OrderBy("pos").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build records select: %w", err)
	}
	if err := pgxscan.Select(ctx, s.pool, &records, sql, args...); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	for _, row := range records {
		r := &model.Record{
			ID:        row.ID,
			EntityID:  row.EntityID,
			Timestamp: row.TS.UTC(),
			Data:      map[string]any{},
		}
		if err := json.Unmarshal(row.Data, &r.Data); err != nil {
			return nil, fmt.Errorf("decode record %s data: %w", row.ID, err)
		}
		snap.Records = append(snap.Records, r)
	}

	return snap, nil
}

// persist replaces the stored snapshot in one transaction.
func (s *Store) persist(ctx context.Context, snap *model.Snapshot) error {
	ctx, span := tracer.Start(ctx, "store.persist")
	span.SetAttributes(
		attribute.Int("entities", len(snap.Entities)),
		attribute.Int("records", len(snap.Records)),
	)
	defer span.End()

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, table := range []string{"fb_entities", "fb_fields", "fb_records"} {
			batch.Queue("DELETE FROM " + table)
		}

		configDoc, err := json.Marshal(snap.Config)
		if err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		batch.Queue(
			`INSERT INTO fb_config (id, doc) VALUES (1, $1)
			 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`,
			configDoc,
		)

		for pos, e := range snap.Entities {
			fieldsDoc, err := json.Marshal(e.Fields)
			if err != nil {
				return fmt.Errorf("encode entity %s fields: %w", e.ID, err)
			}
			sql, args, err := builder().Insert("fb_entities").
				Columns("pos", "id", "name", "fields").
				Values(pos, e.ID, e.Name, fieldsDoc).ToSql()
			if err != nil {
				return fmt.Errorf("build entity insert: %w", err)
			}
			batch.Queue(sql, args...)
		}

		for pos, f := range snap.Fields {
			doc, err := json.Marshal(f)
			if err != nil {
				return fmt.Errorf("encode field %s: %w", f.ID, err)
			}
			sql, args, err := builder().Insert("fb_fields").
				Columns("pos", "id", "doc").
				Values(pos, f.ID, doc).ToSql()
			if err != nil {
				return fmt.Errorf("build field insert: %w", err)
			}
			batch.Queue(sql, args...)
		}

		for pos, r := range snap.Records {
			dataDoc, err := json.Marshal(r.Data)
			if err != nil {
				return fmt.Errorf("encode record %s data: %w", r.ID, err)
			}
			sql, args, err := builder().Insert("fb_records").
				Columns("pos", "id", "entity_id", "ts", "data").
				Values(pos, r.ID, r.EntityID, r.Timestamp, dataDoc).ToSql()
			if err != nil {
				return fmt.Errorf("build record insert: %w", err)
			}
			batch.Queue(sql, args...)
		}

		return tx.SendBatch(ctx, batch).Close()
	})
}
