package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    chat_key    TEXT PRIMARY KEY,
    file_path   TEXT NOT NULL,
    run_id      TEXT NOT NULL,
    analyzed_at TEXT NOT NULL DEFAULT '',
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0,
    records     INTEGER NOT NULL DEFAULT 0,
    options     TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS records (
    chat_key    TEXT NOT NULL,
    record_id   INTEGER NOT NULL,
    date        TEXT NOT NULL,
    time        TEXT NOT NULL,
    sender      TEXT NOT NULL,
    body        TEXT NOT NULL,
    line_number INTEGER NOT NULL DEFAULT 0,
    emojis      TEXT NOT NULL DEFAULT '',
    url_count   INTEGER NOT NULL DEFAULT 0,
    link_count  INTEGER NOT NULL DEFAULT 0,
    word_count  INTEGER NOT NULL DEFAULT 0,
    char_count  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (chat_key, record_id)
);

CREATE TABLE IF NOT EXISTS type_totals (
    chat_key TEXT NOT NULL,
    type     TEXT NOT NULL,
    count    INTEGER NOT NULL,
    PRIMARY KEY (chat_key, type)
);

CREATE TABLE IF NOT EXISTS emoji_totals (
    chat_key TEXT NOT NULL,
    emoji    TEXT NOT NULL,
    count    INTEGER NOT NULL,
    PRIMARY KEY (chat_key, emoji)
);

CREATE TABLE IF NOT EXISTS member_totals (
    chat_key TEXT NOT NULL,
    rank     INTEGER NOT NULL,
    member   TEXT NOT NULL,
    messages INTEGER NOT NULL,
    PRIMARY KEY (chat_key, member)
);

CREATE TABLE IF NOT EXISTS member_stats (
    chat_key          TEXT NOT NULL,
    member            TEXT NOT NULL,
    messages          INTEGER NOT NULL,
    words_per_message REAL NOT NULL,
    media             INTEGER NOT NULL,
    emojis            INTEGER NOT NULL,
    links             INTEGER NOT NULL,
    tiktoks           INTEGER NOT NULL,
    PRIMARY KEY (chat_key, member)
);

CREATE TABLE IF NOT EXISTS hour_totals (
    chat_key   TEXT NOT NULL,
    hour_range TEXT NOT NULL,
    messages   INTEGER NOT NULL,
    PRIMARY KEY (chat_key, hour_range)
);

CREATE TABLE IF NOT EXISTS day_totals (
    chat_key TEXT NOT NULL,
    day      TEXT NOT NULL,
    messages INTEGER NOT NULL,
    PRIMARY KEY (chat_key, day)
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

// chatTables lists every table holding per-chat rows, children first.
var chatTables = []string{
	"records", "type_totals", "emoji_totals", "member_totals",
	"member_stats", "hour_totals", "day_totals", "chats",
}

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrateSchemaVersion(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// schemaVersion should be bumped whenever parsing or aggregation changes so
// that every chat is exported again.
const schemaVersion = "2"

func (d *DB) migrateSchemaVersion() error {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err == nil && ver == schemaVersion {
		return nil
	}
	// v1 databases predate the options column
	has, err := d.hasColumn("chats", "options")
	if err != nil {
		return err
	}
	if !has {
		if _, err := d.db.Exec("ALTER TABLE chats ADD COLUMN options TEXT NOT NULL DEFAULT ''"); err != nil {
			return err
		}
	}
	if _, err := d.db.Exec("UPDATE chats SET mtime = 0, size = 0"); err != nil {
		return err
	}
	_, err = d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	return err
}

func (d *DB) hasColumn(table, column string) (bool, error) {
	rows, err := d.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type ChatInfo struct {
	Mtime   int64
	Size    int64
	Options string // analysis.Options fingerprint of the stored run
}

// GetChatInfo returns nil when the chat was never exported.
func (d *DB) GetChatInfo(chatKey string) (*ChatInfo, error) {
	var info ChatInfo
	err := d.db.QueryRow(
		"SELECT mtime, size, options FROM chats WHERE chat_key = ?",
		chatKey,
	).Scan(&info.Mtime, &info.Size, &info.Options)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) DeleteChat(chatKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := deleteChat(tx, chatKey); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteChat(tx *sql.Tx, chatKey string) error {
	for _, table := range chatTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE chat_key = ?", chatKey); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return nil
}

func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (d *DB) RecordCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM records").Scan(&n)
	return n, err
}

type ChatRow struct {
	ChatKey    string
	FilePath   string
	RunID      string
	AnalyzedAt string
	Records    int
}

// ListChats returns every exported chat, most recently analyzed first.
func (d *DB) ListChats() ([]ChatRow, error) {
	rows, err := d.db.Query(
		"SELECT chat_key, file_path, run_id, analyzed_at, records FROM chats ORDER BY analyzed_at DESC, chat_key",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []ChatRow
	for rows.Next() {
		var c ChatRow
		if err := rows.Scan(&c.ChatKey, &c.FilePath, &c.RunID, &c.AnalyzedAt, &c.Records); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}

type RecordRow struct {
	RecordID   int
	Date       string
	Time       string
	Sender     string
	Body       string
	LineNumber int
}

func (d *DB) GetRecords(chatKey string) ([]RecordRow, error) {
	rows, err := d.db.Query(
		"SELECT record_id, date, time, sender, body, line_number FROM records WHERE chat_key = ? ORDER BY record_id",
		chatKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RecordRow
	for rows.Next() {
		var r RecordRow
		if err := rows.Scan(&r.RecordID, &r.Date, &r.Time, &r.Sender, &r.Body, &r.LineNumber); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
