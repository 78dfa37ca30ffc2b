package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/sflink/pkg/sflink"
)

const upsertObjectSQL = `
INSERT INTO smw_object (smw_namespace, smw_title) VALUES ($1, $2)
ON CONFLICT (smw_namespace, smw_title) DO UPDATE SET smw_title = EXCLUDED.smw_title
RETURNING smw_id`

const savePageSQL = `
INSERT INTO page (page_namespace, page_title, page_text) VALUES ($1, $2, $3)
ON CONFLICT (page_namespace, page_title) DO UPDATE SET page_text = EXCLUDED.page_text`

// SavePage creates or replaces the text of page.
func (s *Store) SavePage(ctx context.Context, page sflink.PageIdentity, text string) error {
	if _, err := s.conn.Exec(ctx, savePageSQL, int(page.Namespace), page.Name, text); err != nil {
		return fmt.Errorf("failed to save page %q: %w", page.Name, err)
	}
	return nil
}

// AddCategory puts page into category. The page must exist.
func (s *Store) AddCategory(ctx context.Context, page sflink.PageIdentity, category string) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO categorylinks (cl_namespace, cl_title, cl_to) VALUES ($1, $2, $3)`,
		int(page.Namespace), page.Name, category)
	if err != nil {
		return fmt.Errorf("failed to add %q to category %q: %w", page.Name, category, err)
	}
	return nil
}

// LabelProperty sets the display label of a special property.
func (s *Store) LabelProperty(ctx context.Context, propertyID, label string) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO smw_property (property_id, label) VALUES ($1, $2)
		ON CONFLICT (property_id) DO UPDATE SET label = EXCLUDED.label`, propertyID, label)
	if err != nil {
		return fmt.Errorf("failed to label property %s: %w", propertyID, err)
	}
	return nil
}

// Assert records value as a value of propertyID on subject, after any existing values.
func (s *Store) Assert(ctx context.Context, subject sflink.PageIdentity, propertyID string, value sflink.PropertyValue) error {
	subjectID, err := s.objectID(ctx, subject)
	if err != nil {
		return err
	}

	switch value.Kind {
	case sflink.ValueKindPage:
		valueID, err := s.objectID(ctx, value.Page)
		if err != nil {
			return err
		}
		_, err = s.conn.Exec(ctx, `
			INSERT INTO smw_property_value (subject_id, property_id, value_kind, value_object_id)
			VALUES ($1, $2, $3, $4)`, subjectID, propertyID, kindPage, valueID)
		if err != nil {
			return fmt.Errorf("failed to assert %s on %q: %w", propertyID, subject.Name, err)
		}
	case sflink.ValueKindText:
		_, err = s.conn.Exec(ctx, `
			INSERT INTO smw_property_value (subject_id, property_id, value_kind, value_text)
			VALUES ($1, $2, $3, $4)`, subjectID, propertyID, kindText, value.Text)
		if err != nil {
			return fmt.Errorf("failed to assert %s on %q: %w", propertyID, subject.Name, err)
		}
	default:
		return fmt.Errorf("cannot store property value of unknown kind")
	}
	return nil
}

func (s *Store) objectID(ctx context.Context, page sflink.PageIdentity) (int64, error) {
	var id int64
	if err := s.conn.QueryRow(ctx, upsertObjectSQL, int(page.Namespace), page.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to register page %q: %w", page.Name, err)
	}
	return id, nil
}

// PendingJobs returns the queued page creation jobs, oldest first.
func (s *Store) PendingJobs(ctx context.Context) ([]sflink.PageCreationJob, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT job_id, job_namespace, job_title, job_user_id, job_page_text, job_timestamp
		FROM job WHERE job_cmd = $1
		ORDER BY job_timestamp, job_id`, JobCreatePage)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (sflink.PageCreationJob, error) {
		var (
			job sflink.PageCreationJob
			id  uuid.UUID
			ns  int
		)
		err := row.Scan(&id, &ns, &job.Target.Name, &job.UserID, &job.PageText, &job.CreatedAt)
		job.ID = id
		job.Target.Namespace = sflink.Namespace(ns)
		return job, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
