package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/scan"
)

const export = `banner
15/06/23, 09:05 - Ana: Hola 😀 https://x.co
15/06/23, 09:40 - Bob: <Multimedia omitido>
15/06/23, 18:10 - Bob: mira esto https://vm.tiktok.com/abc 😂😂
16/06/23, 23:30 - Ana: buenas noches 😀
`

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "sub", "wca.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func writeExport(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func count(t *testing.T, db *DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, db.Raw().QueryRow(query, args...).Scan(&n))
	return n
}

func TestSaveReport(t *testing.T) {
	db := openTestDB(t)
	path := writeExport(t, t.TempDir(), "grupo.txt", export)

	rep, err := analysis.AnalyzeFile(path, analysis.Options{})
	require.NoError(t, err)

	runID, err := SaveReport(db, rep)
	require.NoError(t, err)
	assert.Len(t, runID, 26)

	key := rep.Meta.ChatKey
	n, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 5, count(t, db, "SELECT COUNT(*) FROM type_totals WHERE chat_key = ?", key))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM member_totals WHERE chat_key = ?", key))
	assert.Equal(t, 2, count(t, db, "SELECT count FROM emoji_totals WHERE chat_key = ? AND emoji = ?", key, "😀"))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM day_totals WHERE chat_key = ?", key))

	records, err := db.GetRecords(key)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, RecordRow{
		RecordID:   0,
		Date:       "2023-06-15",
		Time:       "09:05",
		Sender:     "Ana",
		Body:       "Hola 😀 https://x.co",
		LineNumber: 2,
	}, records[0])

	chats, err := db.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, runID, chats[0].RunID)
	assert.Equal(t, path, chats[0].FilePath)
	assert.Equal(t, 4, chats[0].Records)
}

func TestSaveReport_ReplacesPreviousRun(t *testing.T) {
	db := openTestDB(t)
	path := writeExport(t, t.TempDir(), "grupo.txt", export)

	rep, err := analysis.AnalyzeFile(path, analysis.Options{})
	require.NoError(t, err)
	first, err := SaveReport(db, rep)
	require.NoError(t, err)

	rep.Records = rep.Records[:1]
	second, err := SaveReport(db, rep)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	n, err := db.ChatCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 5, count(t, db, "SELECT COUNT(*) FROM type_totals"))
}

func TestExportAll_SkipsUnchanged(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	writeExport(t, dir, "a.txt", export)
	bad := writeExport(t, dir, "b.txt", "banner\n31/02/23, 10:00 - Ana: fecha imposible\n")

	files, err := scan.Resolve([]string{dir})
	require.NoError(t, err)

	stats, err := ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 2, Updated: 1, Errors: 1}, stats)

	stats, err = ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 2, Updated: 0, Skipped: 1, Errors: 1}, stats)

	// fixing the broken file changes its size, so it is picked up again
	require.NoError(t, os.WriteFile(bad, []byte("banner\n28/02/23, 10:00 - Ana: fecha posible\n"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(bad, future, future))
	files, err = scan.Resolve([]string{dir})
	require.NoError(t, err)

	stats, err = ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 2, Updated: 1, Skipped: 1}, stats)
	assert.Equal(t, "scanned=2 updated=1 skipped=1 pruned=0 errors=0", stats.String())
}

func TestExportAll_OptionsChangeForcesUpdate(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	writeExport(t, dir, "grupo.txt", `banner
15/06/23, 09:05 - Ana cambió el asunto
15/06/23, 09:06 - Bob: <Media omitted>
`)
	files, err := scan.Resolve([]string{dir})
	require.NoError(t, err)

	stats, err := ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 2, count(t, db, "SELECT records FROM chats"))
	assert.Equal(t, 0, count(t, db, "SELECT count FROM type_totals WHERE type = 'Multimedia'"))

	// same settings spelled out explicitly are not a change
	stats, err = ExportAll(db, files, analysis.Options{MediaSentinel: "<Multimedia omitido>"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)

	english := analysis.Options{
		Parse:         parse.Options{DropSystemEvents: true},
		MediaSentinel: "<Media omitted>",
	}
	stats, err = ExportAll(db, files, english, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 1, Updated: 1}, stats)
	assert.Equal(t, 1, count(t, db, "SELECT records FROM chats"))
	assert.Equal(t, 1, count(t, db, "SELECT count FROM type_totals WHERE type = 'Multimedia'"))

	stats, err = ExportAll(db, files, english, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 1, Skipped: 1}, stats)
}

func TestExportAll_PrunesMissingFiles(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	keep := writeExport(t, dir, "a.txt", export)
	gone := writeExport(t, dir, "b.txt", export)

	files, err := scan.Resolve([]string{dir})
	require.NoError(t, err)
	_, err = ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, os.Remove(gone))
	files, err = scan.Resolve([]string{keep})
	require.NoError(t, err)

	stats, err := ExportAll(db, files, analysis.Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Stats{Scanned: 1, Skipped: 1, Pruned: 1}, stats)

	chats, err := db.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, keep, chats[0].FilePath)
	n, err := db.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestOpenDB_MigratesV1(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wca.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	// rebuild chats as it was before the options column
	_, err = db.Raw().Exec(`DROP TABLE chats;
		CREATE TABLE chats (chat_key TEXT PRIMARY KEY, file_path TEXT NOT NULL, run_id TEXT NOT NULL,
			analyzed_at TEXT NOT NULL DEFAULT '', mtime INTEGER NOT NULL DEFAULT 0,
			size INTEGER NOT NULL DEFAULT 0, records INTEGER NOT NULL DEFAULT 0);
		INSERT INTO chats (chat_key, file_path, run_id, mtime, size) VALUES ('k', '/x.txt', 'r', 10, 20);
		UPDATE meta SET value = '1' WHERE key = 'schema_version';`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	info, err := db.GetChatInfo("k")
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, ChatInfo{}, *info)
}

func TestDeleteChat(t *testing.T) {
	db := openTestDB(t)
	path := writeExport(t, t.TempDir(), "grupo.txt", export)
	rep, err := analysis.AnalyzeFile(path, analysis.Options{})
	require.NoError(t, err)
	_, err = SaveReport(db, rep)
	require.NoError(t, err)

	require.NoError(t, db.DeleteChat(rep.Meta.ChatKey))

	for _, table := range chatTables {
		assert.Zero(t, count(t, db, "SELECT COUNT(*) FROM "+table), table)
	}
	info, err := db.GetChatInfo(rep.Meta.ChatKey)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestOpenDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wca.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(path)
	require.NoError(t, err)
	defer db.Close()
	n, err := db.ChatCount()
	require.NoError(t, err)
	assert.Zero(t, n)
}
