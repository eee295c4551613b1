package modules

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// PathIndex is a persistent cache of import-reference resolutions. Locate
// probes the filesystem several times per reference; across editor
// sessions of a large workspace the answers rarely change, so they are
// kept in a sqlite file keyed by the importing file and the reference.
// Stale entries are detected by the caller re-checking file existence.
type PathIndex struct {
	db         *sql.DB
	projectKey string
	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
}

// OpenPathIndex opens (or creates) the index database at path. projectKey
// namespaces entries so one database can serve several workspaces.
func OpenPathIndex(path, projectKey string) (*PathIndex, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("path index location must not be empty")
	}
	if dir := filepath.Dir(cleanPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create path index directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open path index %q: %w", cleanPath, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping path index %q: %w", cleanPath, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS module_paths (
  project_key TEXT NOT NULL,
  reference   TEXT NOT NULL,
  file_path   TEXT NOT NULL,
  PRIMARY KEY (project_key, reference)
)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate path index: %w", err)
	}

	key := strings.TrimSpace(projectKey)
	if key == "" {
		key = "default"
	}

	getStmt, err := db.Prepare(
		`SELECT file_path FROM module_paths WHERE project_key = ? AND reference = ?`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare index get: %w", err)
	}
	putStmt, err := db.Prepare(
		`INSERT INTO module_paths (project_key, reference, file_path) VALUES (?, ?, ?)
		 ON CONFLICT(project_key, reference) DO UPDATE SET file_path = excluded.file_path`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare index put: %w", err)
	}

	return &PathIndex{db: db, projectKey: key, getStmt: getStmt, putStmt: putStmt}, nil
}

// Get returns the cached resolution for an import reference.
func (x *PathIndex) Get(fromFile string, dots int, segments []string) (string, bool) {
	var p string
	err := x.getStmt.QueryRow(x.projectKey, referenceKey(fromFile, dots, segments)).Scan(&p)
	if err != nil {
		return "", false
	}
	return p, p != ""
}

// Put stores a resolution.
func (x *PathIndex) Put(fromFile string, dots int, segments []string, filePath string) {
	_, _ = x.putStmt.Exec(x.projectKey, referenceKey(fromFile, dots, segments), filePath)
}

// Close releases the database handle.
func (x *PathIndex) Close() error {
	if x.getStmt != nil {
		_ = x.getStmt.Close()
	}
	if x.putStmt != nil {
		_ = x.putStmt.Close()
	}
	return x.db.Close()
}

// referenceKey flattens an import reference into a single cache key.
// Relative references depend on the importing file's directory only.
func referenceKey(fromFile string, dots int, segments []string) string {
	base := ""
	if dots > 0 {
		base = filepath.ToSlash(filepath.Dir(fromFile))
	}
	return base + "|" + strconv.Itoa(dots) + "|" + strings.Join(segments, ".")
}
