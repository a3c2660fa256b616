package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billingapi/internal/model"
	"billingapi/internal/repository"
)

// docExpr rebuilds a document from its row. The id and removed columns are authoritative.
const docExpr = `data || jsonb_build_object('id', id, 'removed', removed)`

// DocumentPostgres is a PostgreSQL implementation of repository.Store.
// Each collection lives in its own table holding the document as JSONB.
type DocumentPostgres[T repository.Document] struct {
	db    *sql.DB
	table string
	tx    *TxManager
}

// NewDocumentPostgres creates a store for the given collection.
func NewDocumentPostgres[T repository.Document](db *sql.DB, c model.Collection) *DocumentPostgres[T] {
	return &DocumentPostgres[T]{db: db, table: c.Table, tx: NewTxManager(db)}
}

var _ repository.Store[model.Invoice] = (*DocumentPostgres[model.Invoice])(nil)

// FindOne fetches the first live document matching f.
func (r *DocumentPostgres[T]) FindOne(ctx context.Context, f repository.Filter) (*T, error) {
	where, args, ok := buildWhere(f)
	if !ok {
		return nil, repository.ErrNoDocument
	}

	q := `SELECT ` + docExpr + ` FROM ` + r.table + ` ` + where + ` LIMIT 1`
	if _, inTx := txFromContext(ctx); f.Lock && inTx {
		q += ` FOR UPDATE`
	}

	var raw []byte
	if err := conn(ctx, r.db).QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoDocument
		}
		return nil, fmt.Errorf("find one in %s: %w", r.table, err)
	}

	doc, err := decodeDocument[T](raw)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Find returns up to limit live documents matching f, newest first.
func (r *DocumentPostgres[T]) Find(ctx context.Context, f repository.Filter, limit int) ([]T, error) {
	items := make([]T, 0)

	where, args, ok := buildWhere(f)
	if !ok {
		return items, nil
	}

	q := `SELECT ` + docExpr + ` FROM ` + r.table + ` ` + where + ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		args = append(args, limit)
		q += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		doc, err := decodeDocument[T](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.table, err)
	}
	return items, nil
}

// CountDocuments counts live documents matching f.
func (r *DocumentPostgres[T]) CountDocuments(ctx context.Context, f repository.Filter) (int64, error) {
	where, args, ok := buildWhere(f)
	if !ok {
		return 0, nil
	}

	q := `SELECT COUNT(*) FROM ` + r.table + ` ` + where
	var n int64
	if err := conn(ctx, r.db).QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.table, err)
	}
	return n, nil
}

// FindOneAndUpdate locks the matching row, merges p into it, validates the result and
// writes it back. It joins the caller's transaction when ctx carries one.
func (r *DocumentPostgres[T]) FindOneAndUpdate(ctx context.Context, f repository.Filter, p repository.Patch) (*T, error) {
	where, args, ok := buildWhere(f)
	if !ok {
		return nil, repository.ErrNoDocument
	}

	var out *T
	err := r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		c := conn(ctx, r.db)

		q := `SELECT ` + docExpr + ` FROM ` + r.table + ` ` + where + ` LIMIT 1 FOR UPDATE`
		var raw []byte
		if err := c.QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNoDocument
			}
			return fmt.Errorf("lock %s: %w", r.table, err)
		}

		doc, err := applyPatch[T](raw, p)
		if err != nil {
			return err
		}
		data, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", r.table, err)
		}

		const u = `UPDATE %s SET data = $1, removed = $2, updated_at = now() WHERE id = $3`
		if _, err := c.ExecContext(ctx, fmt.Sprintf(u, r.table), data, doc.IsRemoved(), doc.DocumentID()); err != nil {
			return fmt.Errorf("update %s: %w", r.table, err)
		}
		out = &doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// buildWhere renders f as a parameterized WHERE clause. ok is false when f can
// never match, e.g. an id that is not a UUID.
func buildWhere(f repository.Filter) (string, []any, bool) {
	conds := []string{"removed = false"}
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.ID != "" {
		if _, err := uuid.Parse(f.ID); err != nil {
			return "", nil, false
		}
		conds = append(conds, "id = "+arg(f.ID))
	}

	keys := make([]string, 0, len(f.Equals))
	for k := range f.Equals {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		conds = append(conds, fmt.Sprintf("data->>%s = %s", arg(k), arg(f.Equals[k])))
	}

	if f.Contains != nil {
		if len(f.Contains.Fields) == 0 {
			return "", nil, false
		}
		term := arg("%" + escapeLike(f.Contains.Term) + "%")
		ors := make([]string, 0, len(f.Contains.Fields))
		for _, field := range f.Contains.Fields {
			ors = append(ors, fmt.Sprintf("data->>%s ILIKE %s", arg(field), term))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	return "WHERE " + strings.Join(conds, " AND "), args, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func decodeDocument[T any](raw []byte) (T, error) {
	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

type validatable interface {
	Validate() error
}

// applyPatch merges p into the stored document. The merged map is decoded into T,
// which drops unknown fields and rejects values of the wrong type.
func applyPatch[T repository.Document](raw []byte, p repository.Patch) (T, error) {
	var zero T

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	m := map[string]any{}
	if err := dec.Decode(&m); err != nil {
		return zero, fmt.Errorf("decode document: %w", err)
	}

	for k, v := range p.Set {
		m[k] = v
	}
	for k, delta := range p.Inc {
		cur, err := decimalField(m[k])
		if err != nil {
			return zero, &repository.ValidationError{Err: fmt.Errorf("%s: %w", k, err)}
		}
		m[k] = cur.Add(delta)
	}

	merged, err := json.Marshal(m)
	if err != nil {
		return zero, &repository.ValidationError{Err: err}
	}

	var doc T
	if err := json.Unmarshal(merged, &doc); err != nil {
		return zero, &repository.ValidationError{Err: err}
	}
	if v, ok := any(doc).(validatable); ok {
		if err := v.Validate(); err != nil {
			return zero, &repository.ValidationError{Err: err}
		}
	}
	return doc, nil
}

func decimalField(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(x)
	case decimal.Decimal:
		return x, nil
	default:
		return decimal.Zero, fmt.Errorf("cannot increment %T", v)
	}
}
