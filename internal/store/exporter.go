package store

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/scan"
)

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
}

func (s Stats) String() string {
	return fmt.Sprintf("scanned=%d updated=%d skipped=%d pruned=%d errors=%d",
		s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors)
}

// ExportAll analyzes every file and writes its report, skipping files whose
// mtime, size and analysis options match the previous export. A file that
// fails to parse is logged and counted; the remaining files are still
// exported. Chats whose export file no longer exists are removed.
func ExportAll(db *DB, files []scan.FileInfo, opts analysis.Options, log zerolog.Logger) (Stats, error) {
	stats := Stats{Scanned: len(files)}
	fingerprint := opts.Fingerprint()

	for _, fi := range files {
		chatKey := parse.ChatKey(fi.Path)
		needs, err := needsUpdate(db, chatKey, fi.Mtime, fi.Size, fingerprint)
		if err != nil {
			return stats, fmt.Errorf("check %s: %w", fi.Path, err)
		}
		if !needs {
			stats.Skipped++
			log.Debug().Str("file", fi.Path).Msg("unchanged, skipped")
			continue
		}

		rep, err := analysis.AnalyzeFile(fi.Path, opts)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("file", fi.Path).Msg("analyze failed")
			continue
		}

		runID, err := SaveReport(db, rep)
		if err != nil {
			stats.Errors++
			log.Warn().Err(err).Str("file", fi.Path).Msg("export failed")
			continue
		}
		stats.Updated++
		log.Info().Str("file", fi.Path).Str("run", runID).Int("records", len(rep.Records)).Msg("exported")
	}

	pruned, err := pruneMissing(db, log)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	return stats, nil
}

// pruneMissing deletes chats whose export file is gone from disk.
func pruneMissing(db *DB, log zerolog.Logger) (int, error) {
	chats, err := db.ListChats()
	if err != nil {
		return 0, err
	}
	pruned := 0
	for _, c := range chats {
		if _, err := os.Stat(c.FilePath); !os.IsNotExist(err) {
			continue
		}
		if err := db.DeleteChat(c.ChatKey); err != nil {
			return pruned, err
		}
		log.Info().Str("file", c.FilePath).Msg("pruned")
		pruned++
	}
	return pruned, nil
}

func needsUpdate(db *DB, chatKey string, mtime, size int64, fingerprint string) (bool, error) {
	info, err := db.GetChatInfo(chatKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new chat
	}
	return info.Mtime != mtime || info.Size != size || info.Options != fingerprint, nil
}

func newRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// SaveReport replaces everything stored for the report's chat in a single
// transaction and returns the run ID assigned to this export.
func SaveReport(db *DB, rep *analysis.Report) (string, error) {
	tx, err := db.Raw().Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	key := rep.Meta.ChatKey
	if err := deleteChat(tx, key); err != nil {
		return "", err
	}

	runID := newRunID()
	_, err = tx.Exec(
		`INSERT INTO chats (chat_key, file_path, run_id, analyzed_at, mtime, size, records, options)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		key,
		rep.Meta.FilePath,
		runID,
		rep.AnalyzedAt.UTC().Format(time.RFC3339),
		rep.Meta.Mtime.Unix(),
		rep.Meta.Size,
		len(rep.Records),
		rep.Options.Fingerprint(),
	)
	if err != nil {
		return "", err
	}

	if err := insertRecords(tx, rep); err != nil {
		return "", fmt.Errorf("records: %w", err)
	}
	if err := insertTotals(tx, rep); err != nil {
		return "", err
	}

	return runID, tx.Commit()
}

func insertRecords(tx *sql.Tx, rep *analysis.Report) error {
	stmt, err := tx.Prepare(
		`INSERT INTO records (chat_key, record_id, date, time, sender, body, line_number,
		                      emojis, url_count, link_count, word_count, char_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range rep.Records {
		_, err := stmt.Exec(
			rep.Meta.ChatKey,
			i,
			r.Date.Format(time.DateOnly),
			r.Time,
			r.Sender,
			r.Body,
			r.Line,
			strings.Join(r.Features.Emojis, " "),
			r.Features.URLCount,
			r.Features.LinkCount,
			r.Features.WordCount,
			r.Features.CharCount,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// insertTotals writes one aggregate table at a time; each gets its own
// prepared statement.
func insertTotals(tx *sql.Tx, rep *analysis.Report) error {
	key := rep.Meta.ChatKey

	insert := func(table, query string, rows [][]any) error {
		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("%s: %w", table, err)
		}
		defer stmt.Close()
		for _, row := range rows {
			if _, err := stmt.Exec(append([]any{key}, row...)...); err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
		}
		return nil
	}

	var types, emojis, members, memberStats, hours, days [][]any
	for _, t := range rep.Types.Rows() {
		types = append(types, []any{t.Type, t.Count})
	}
	for _, e := range rep.Emojis {
		emojis = append(emojis, []any{e.Emoji, e.Count})
	}
	for _, m := range rep.Members {
		members = append(members, []any{m.Rank, m.Member, m.Messages})
	}
	for _, m := range rep.MemberStats {
		memberStats = append(memberStats, []any{m.Member, m.Messages, m.WordsPerMessage, m.Media, m.Emojis, m.Links, m.Tiktoks})
	}
	for _, h := range rep.Hours {
		hours = append(hours, []any{h.Range, h.Messages})
	}
	for _, d := range rep.Days {
		days = append(days, []any{d.Date.Format(time.DateOnly), d.Messages})
	}

	steps := []struct {
		table, query string
		rows         [][]any
	}{
		{"type_totals", "INSERT INTO type_totals (chat_key, type, count) VALUES (?, ?, ?)", types},
		{"emoji_totals", "INSERT INTO emoji_totals (chat_key, emoji, count) VALUES (?, ?, ?)", emojis},
		{"member_totals", "INSERT INTO member_totals (chat_key, rank, member, messages) VALUES (?, ?, ?, ?)", members},
		{"member_stats", `INSERT INTO member_stats (chat_key, member, messages, words_per_message, media, emojis, links, tiktoks)
		                  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, memberStats},
		{"hour_totals", "INSERT INTO hour_totals (chat_key, hour_range, messages) VALUES (?, ?, ?)", hours},
		{"day_totals", "INSERT INTO day_totals (chat_key, day, messages) VALUES (?, ?, ?)", days},
	}
	for _, s := range steps {
		if err := insert(s.table, s.query, s.rows); err != nil {
			return err
		}
	}
	return nil
}
