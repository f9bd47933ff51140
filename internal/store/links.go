package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/erazemk/shramba/internal/model"
)

// validateLinks checks that every link URL is a well-formed absolute
// http(s) URL. All URLs are checked before anything is persisted, so a
// single bad URL rejects the whole set.
func validateLinks(links []model.Link) error {
	var problems []string
	for _, link := range links {
		raw := strings.TrimSpace(link.URL)
		if raw == "" {
			problems = append(problems, "empty link URL")
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid URL: %s", raw))
		}
	}
	if len(problems) > 0 {
		return &model.ValidationError{Problems: problems}
	}
	return nil
}

// insertLinks attaches a validated link set to a revision inside a
// transaction. Links are immutable once written.
func insertLinks(ctx context.Context, tx *sql.Tx, revisionID int64, links []model.Link) error {
	for _, link := range links {
		var label sql.NullString
		if link.Label != "" {
			label = sql.NullString{String: link.Label, Valid: true}
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO revision_links (revision_id, url, label) VALUES (?, ?, ?)`,
			revisionID, strings.TrimSpace(link.URL), label,
		)
		if err != nil {
			return fmt.Errorf("attaching link: %w", err)
		}
	}
	return nil
}

// linksForRevision returns the links attached to a revision.
func linksForRevision(ctx context.Context, db *sql.DB, revisionID int64) ([]model.Link, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, revision_id, url, label FROM revision_links
		 WHERE revision_id = ? ORDER BY id`, revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var link model.Link
		var label sql.NullString
		if err := rows.Scan(&link.ID, &link.RevisionID, &link.URL, &label); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		link.Label = label.String
		links = append(links, link)
	}
	return links, rows.Err()
}

// linksForRevisionTx is linksForRevision within a transaction, used when
// carrying a previous revision's links onto a new one.
func linksForRevisionTx(ctx context.Context, tx *sql.Tx, revisionID int64) ([]model.Link, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, revision_id, url, label FROM revision_links
		 WHERE revision_id = ? ORDER BY id`, revisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var link model.Link
		var label sql.NullString
		if err := rows.Scan(&link.ID, &link.RevisionID, &link.URL, &label); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		link.Label = label.String
		links = append(links, link)
	}
	return links, rows.Err()
}
