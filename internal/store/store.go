// Package store saves and loads corpora in SQLite databases.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/FocuswithJustin/BibleArchive/core/bible"
	berrors "github.com/FocuswithJustin/BibleArchive/core/errors"
	"github.com/FocuswithJustin/BibleArchive/core/sqlite"
	"github.com/FocuswithJustin/BibleArchive/internal/logging"
)

// SchemaVersion is recorded in the meta table.
const SchemaVersion = "1"

const schema = `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT
	);
	CREATE TABLE IF NOT EXISTS books (
		ordinal INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		chapter_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS chapters (
		book INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		recorded_book INTEGER NOT NULL,
		recorded_ordinal INTEGER NOT NULL,
		PRIMARY KEY (book, chapter),
		FOREIGN KEY (book) REFERENCES books(ordinal)
	);
	CREATE TABLE IF NOT EXISTS verses (
		book INTEGER NOT NULL,
		chapter INTEGER NOT NULL,
		verse INTEGER NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (book, chapter, verse),
		FOREIGN KEY (book, chapter) REFERENCES chapters(book, chapter)
	);
`

// Open opens (or creates) a corpus database at path.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.OpenContext(ctx, path)
	if err != nil {
		return nil, berrors.NewIO("open", path, err)
	}
	return db, nil
}

// OpenReadOnly opens an existing corpus database without write access.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sqlite.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, berrors.NewIO("open", path, err)
	}
	return db, nil
}

// Save replaces the database contents with corpus. Chapter slots are stored
// by position together with the book and ordinal the chapter records for
// itself, so anomalies survive a round trip.
func Save(ctx context.Context, db *sql.DB, corpus *bible.Corpus) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return berrors.Wrap(err, "create schema")
	}
	return sqlite.InTx(ctx, db, func(tx *sql.Tx) error {
		for _, table := range []string{"verses", "chapters", "books", "meta"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return berrors.Wrapf(err, "clear %s", table)
			}
		}

		meta := map[string]string{
			"title":          corpus.Title,
			"version":        corpus.Version,
			"schema_version": SchemaVersion,
		}
		for k, v := range meta {
			if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
				return berrors.Wrapf(err, "insert meta %s", k)
			}
		}

		bookStmt, err := tx.PrepareContext(ctx, "INSERT INTO books (ordinal, name, chapter_count) VALUES (?, ?, ?)")
		if err != nil {
			return err
		}
		defer bookStmt.Close()
		chapterStmt, err := tx.PrepareContext(ctx, "INSERT INTO chapters (book, chapter, recorded_book, recorded_ordinal) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer chapterStmt.Close()
		verseStmt, err := tx.PrepareContext(ctx, "INSERT INTO verses (book, chapter, verse, text) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer verseStmt.Close()

		for _, b := range corpus.BooksInOrder() {
			if b == nil {
				continue
			}
			if _, err := bookStmt.ExecContext(ctx, b.Ordinal, b.Name, b.ChapterCount); err != nil {
				return berrors.Wrapf(err, "insert book %d", b.Ordinal)
			}
			for slot, ch := range b.Chapters {
				if ch == nil {
					continue
				}
				chapter := slot + 1
				if _, err := chapterStmt.ExecContext(ctx, b.Ordinal, chapter, ch.Book, ch.Ordinal); err != nil {
					return berrors.Wrapf(err, "insert chapter %d:%d", b.Ordinal, chapter)
				}
				for _, v := range ch.EachVerse() {
					if _, err := verseStmt.ExecContext(ctx, b.Ordinal, chapter, v.Ordinal, v.Text); err != nil {
						return berrors.Wrapf(err, "insert verse %d %d:%d", b.Ordinal, chapter, v.Ordinal)
					}
				}
			}
		}
		return nil
	})
}

// Load reads a corpus saved by Save.
func Load(ctx context.Context, db *sql.DB) (*bible.Corpus, error) {
	meta := make(map[string]string)
	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return nil, berrors.Wrap(err, "query meta")
	}
	for rows.Next() {
		var k string
		var v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, err
		}
		meta[k] = v.String
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if meta["schema_version"] != SchemaVersion {
		return nil, berrors.NewUnsupported("store schema", fmt.Sprintf("version %q", meta["schema_version"]))
	}

	corpus := bible.NewCorpus(meta["title"])
	corpus.Version = meta["version"]

	rows, err = db.QueryContext(ctx, "SELECT ordinal, name, chapter_count FROM books ORDER BY ordinal")
	if err != nil {
		return nil, berrors.Wrap(err, "query books")
	}
	for rows.Next() {
		var ordinal, count int
		var name string
		if err := rows.Scan(&ordinal, &name, &count); err != nil {
			rows.Close()
			return nil, err
		}
		b, ok := corpus.Book(ordinal)
		if !ok {
			rows.Close()
			return nil, berrors.NewValidation("books", fmt.Sprintf("book ordinal %d out of range", ordinal))
		}
		if count < 0 || count > bible.MaxChapters {
			rows.Close()
			return nil, berrors.NewValidation("books", fmt.Sprintf("book %d chapter_count %d out of range", ordinal, count))
		}
		b.Name = name
		b.ChapterCount = count
		b.Chapters = make([]*bible.Chapter, count)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, "SELECT book, chapter, recorded_book, recorded_ordinal FROM chapters ORDER BY book, chapter")
	if err != nil {
		return nil, berrors.Wrap(err, "query chapters")
	}
	for rows.Next() {
		var book, chapter, recBook, recOrdinal int
		if err := rows.Scan(&book, &chapter, &recBook, &recOrdinal); err != nil {
			rows.Close()
			return nil, err
		}
		b, ok := corpus.Book(book)
		if !ok || chapter < 1 || chapter > bible.MaxChapters {
			rows.Close()
			return nil, berrors.NewValidation("chapters", fmt.Sprintf("chapter %d:%d out of range", book, chapter))
		}
		for len(b.Chapters) < chapter {
			b.Chapters = append(b.Chapters, nil)
		}
		if chapter > b.ChapterCount {
			logging.ChapterAnomaly(ctx, book, chapter, "chapter_count", b.ChapterCount)
			b.ChapterCount = chapter
		}
		b.Chapters[chapter-1] = &bible.Chapter{Book: recBook, Ordinal: recOrdinal}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.QueryContext(ctx, "SELECT book, chapter, verse, text FROM verses ORDER BY book, chapter, verse")
	if err != nil {
		return nil, berrors.Wrap(err, "query verses")
	}
	defer rows.Close()
	for rows.Next() {
		var book, chapter, verse int
		var text string
		if err := rows.Scan(&book, &chapter, &verse, &text); err != nil {
			return nil, err
		}
		var ch *bible.Chapter
		b, ok := corpus.Book(book)
		if ok {
			ch, ok = b.Chapter(chapter)
		}
		if !ok {
			return nil, berrors.NewValidation("verses", fmt.Sprintf("verse %d %d:%d has no chapter", book, chapter, verse))
		}
		if err := ch.SetVerse(verse, text); err != nil {
			return nil, berrors.Wrapf(err, "verse %d %d:%d", book, chapter, verse)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := corpus.Validate(); err != nil {
		return nil, err
	}
	return corpus, nil
}
