package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// JobCreatePage is the job_cmd of page creation jobs.
const JobCreatePage = "createPage"

const (
	kindPage = "page"
	kindText = "text"
)

const valuesOfSQL = `
SELECT v.value_kind, o.smw_namespace, o.smw_title, v.value_text
FROM smw_property_value v
JOIN smw_object s ON s.smw_id = v.subject_id
LEFT JOIN smw_object o ON o.smw_id = v.value_object_id
WHERE s.smw_namespace = $1 AND s.smw_title = $2 AND v.property_id = $3
ORDER BY v.value_id`

const incomingPropertiesSQL = `
SELECT v.property_id, COALESCE(p.label, v.property_id)
FROM smw_property_value v
JOIN smw_object o ON o.smw_id = v.value_object_id
LEFT JOIN smw_property p ON p.property_id = v.property_id
WHERE o.smw_namespace = $1 AND o.smw_title = $2
GROUP BY v.property_id, p.label
ORDER BY MIN(v.value_id)`

const categoriesOfSQL = `
SELECT cl.cl_to
FROM categorylinks cl
JOIN page p ON p.page_namespace = cl.cl_namespace AND p.page_title = cl.cl_title
WHERE cl.cl_namespace = $1 AND cl.cl_title = $2
GROUP BY cl.cl_to
ORDER BY MIN(cl.cl_id)`

const allCategoriesSQL = `SELECT DISTINCT cl_to FROM categorylinks ORDER BY cl_to`

const pageTextSQL = `SELECT page_text FROM page WHERE page_namespace = $1 AND page_title = $2`

const enqueueSQL = `
INSERT INTO job (job_id, job_cmd, job_namespace, job_title, job_user_id, job_page_text, job_timestamp)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Store is the PostgreSQL-backed wiki store. Safe for concurrent use when conn is.
type Store struct {
	conn sflink.DBConnection
}

func New(conn sflink.DBConnection) *Store {
	if conn == nil {
		panic("conn cannot be nil")
	}
	return &Store{conn: conn}
}

func (s *Store) ValuesOf(ctx context.Context, subject sflink.PageIdentity, propertyID string) ([]sflink.PropertyValue, error) {
	rows, err := s.conn.Query(ctx, valuesOfSQL, int(subject.Namespace), subject.Name, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property values: %w", err)
	}
	values, err := pgx.CollectRows(rows, scanPropertyValue)
	if err != nil {
		return nil, fmt.Errorf("failed to read property values: %w", err)
	}
	return values, nil
}

func scanPropertyValue(row pgx.CollectableRow) (sflink.PropertyValue, error) {
	var (
		kind  string
		ns    *int
		title *string
		text  *string
	)
	if err := row.Scan(&kind, &ns, &title, &text); err != nil {
		return sflink.PropertyValue{}, err
	}

	switch {
	case kind == kindPage && ns != nil && title != nil:
		return sflink.PageValue(sflink.Namespace(*ns), *title), nil
	case kind == kindText && text != nil:
		return sflink.TextValue(*text), nil
	}
	return sflink.PropertyValue{Kind: sflink.ValueKindUnknown}, nil
}

func (s *Store) IncomingProperties(ctx context.Context, value sflink.PageIdentity) ([]sflink.IncomingProperty, error) {
	rows, err := s.conn.Query(ctx, incomingPropertiesSQL, int(value.Namespace), value.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to query incoming properties: %w", err)
	}
	props, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sflink.IncomingProperty, error) {
		var p sflink.IncomingProperty
		err := row.Scan(&p.PropertyID, &p.SubjectName)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read incoming properties: %w", err)
	}
	return props, nil
}

// CategoriesOf returns the categories of page in the order they were added.
// A page without a page row has no categories.
func (s *Store) CategoriesOf(ctx context.Context, page sflink.PageIdentity) ([]string, error) {
	return s.queryStrings(ctx, categoriesOfSQL, int(page.Namespace), page.Name)
}

func (s *Store) AllCategories(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, allCategoriesSQL)
}

func (s *Store) queryStrings(ctx context.Context, sql string, args ...any) ([]string, error) {
	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return out, nil
}

func (s *Store) PageText(ctx context.Context, page sflink.PageIdentity) (string, bool, error) {
	var text string
	err := s.conn.QueryRow(ctx, pageTextSQL, int(page.Namespace), page.Name).Scan(&text)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read page text: %w", err)
	}
	return text, true, nil
}

// Enqueue inserts jobs into the wiki job table. Jobs are written one by one; a
// failure leaves earlier jobs queued.
func (s *Store) Enqueue(ctx context.Context, jobs ...sflink.PageCreationJob) error {
	for _, job := range jobs {
		_, err := s.conn.Exec(ctx, enqueueSQL,
			job.ID, JobCreatePage, int(job.Target.Namespace), job.Target.Name,
			job.UserID, job.PageText, job.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to enqueue job %s: %w", job.ID, err)
		}
	}
	return nil
}

var (
	_ sflink.PropertyStore = (*Store)(nil)
	_ sflink.CategoryIndex = (*Store)(nil)
	_ sflink.PageSource    = (*Store)(nil)
	_ sflink.JobQueue      = (*Store)(nil)
)
