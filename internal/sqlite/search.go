package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/icarus-portal/icarus-api/internal/domain/project"
)

// Search runs a full-text query against the projects FTS index, best matches
// first. User input is quoted per token so FTS5 operators cannot break the
// statement.
func (r *ProjectRepository) Search(ctx context.Context, query string, limit int) ([]project.Project, error) {
	match := sanitizeFTSQuery(query)
	if match == "" {
		return nil, nil
	}

	stmt := `
		SELECT ` + prefixedProjectColumns("p") + `
		FROM projects_fts f
		JOIN projects p ON p.rowid = f.rowid
		WHERE f.projects_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, stmt, match, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search rows: %w", err)
	}
	return projects, nil
}

func prefixedProjectColumns(alias string) string {
	cols := strings.Split(projectColumns, ",")
	for i, col := range cols {
		cols[i] = alias + "." + strings.TrimSpace(col)
	}
	return strings.Join(cols, ", ")
}

// sanitizeFTSQuery quotes each token to neutralize FTS5 syntax
func sanitizeFTSQuery(query string) string {
	tokens := strings.Fields(query)
	quoted := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.ReplaceAll(token, `"`, ``)
		if token == "" {
			continue
		}
		quoted = append(quoted, fmt.Sprintf("%q", token))
	}
	return strings.Join(quoted, " ")
}
