package postgres

const (
	queryGetDocument = `SELECT body FROM documents WHERE collection = $1 AND id = $2`

	queryPutDocument = `
		INSERT INTO documents (collection, id, body, writer, updated_at)
		VALUES ($1, $2, $3, $4, clock_timestamp())
		ON CONFLICT (collection, id) DO UPDATE
		SET body = EXCLUDED.body, writer = EXCLUDED.writer, updated_at = EXCLUDED.updated_at`

	queryDeleteDocument = `DELETE FROM documents WHERE collection = $1 AND id = $2`

	queryListChanges = `
		SELECT id, updated_at, writer FROM documents
		WHERE collection = $1 AND updated_at > $2
		ORDER BY updated_at`
)
