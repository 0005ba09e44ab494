package repository

const (
	GetValueQuery = `
        SELECT value
        FROM session_kv
        WHERE key = $1
    `

	UpsertValueQuery = `
       INSERT INTO session_kv (key, value, version, updated_at)
       VALUES ($1, $2, 1, NOW())
       ON CONFLICT (key) DO UPDATE
       SET
           value = EXCLUDED.value,
           version = session_kv.version + 1,
           updated_at = NOW()
   `

	DeleteValuesQuery = `
    DELETE FROM session_kv
    WHERE key = ANY($1)
	`

	CreateBulkTempTableQuery = `
        CREATE TEMP TABLE session_kv_tmp (
            key TEXT PRIMARY KEY,
            value BYTEA NOT NULL
        ) ON COMMIT DROP
    `

	UpsertFromBulkTempTableQuery = `
        INSERT INTO session_kv (key, value, version, updated_at)
        SELECT u.key, u.value, 1, NOW()
        FROM session_kv_tmp u
        ON CONFLICT (key) DO UPDATE
        SET
            value = EXCLUDED.value,
            version = session_kv.version + 1,
            updated_at = NOW()
    `
)
