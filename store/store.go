// Package store provides SQLite persistence for compiled c-e structures.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ceslang/go-ces/ces"
	"github.com/ceslang/go-ces/polynomial"
)

// Store handles SQLite database operations for compiled structures.
type Store struct {
	db *sql.DB
}

// Record is the catalog row for a saved structure.
type Record struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Nodes   int       `json:"nodes"`
	Links   int       `json:"links"`
	SavedAt time.Time `json:"saved_at"`
}

// New opens (or creates) the database at the given path and applies the
// schema. Use ":memory:" for an ephemeral store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS structures (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS nodes (
		structure_id TEXT NOT NULL,
		node_id TEXT NOT NULL,
		label TEXT NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 1,
		cause TEXT,
		effect TEXT,
		PRIMARY KEY (structure_id, node_id),
		FOREIGN KEY (structure_id) REFERENCES structures(id)
	);

	CREATE TABLE IF NOT EXISTS links (
		structure_id TEXT NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		kind INTEGER NOT NULL,
		weight INTEGER NOT NULL DEFAULT 1,
		PRIMARY KEY (structure_id, source, target),
		FOREIGN KEY (structure_id) REFERENCES structures(id)
	);

	CREATE TABLE IF NOT EXISTS inhibitors (
		structure_id TEXT NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		PRIMARY KEY (structure_id, source, target),
		FOREIGN KEY (structure_id) REFERENCES structures(id)
	);

	CREATE INDEX IF NOT EXISTS idx_structures_name ON structures(name);
	CREATE INDEX IF NOT EXISTS idx_nodes_structure ON nodes(structure_id);
	CREATE INDEX IF NOT EXISTS idx_links_structure ON links(structure_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Save persists a compiled structure. Saving the same structure ID again
// replaces the previous snapshot.
func (s *Store) Save(cs *ces.Structure) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"nodes", "links", "inhibitors"} {
		if _, err := tx.Exec(
			fmt.Sprintf(`DELETE FROM %s WHERE structure_id = ?`, table), cs.ID,
		); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO structures (id, name, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, saved_at = excluded.saved_at`,
		cs.ID, cs.Name, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert structure: %w", err)
	}

	for _, id := range cs.NodeIDs() {
		node := cs.Node(id)
		cause, err := encodePoly(node.Cause)
		if err != nil {
			return fmt.Errorf("encode cause of %q: %w", id, err)
		}
		effect, err := encodePoly(node.Effect)
		if err != nil {
			return fmt.Errorf("encode effect of %q: %w", id, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO nodes (structure_id, node_id, label, capacity, cause, effect)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			cs.ID, id, node.Label, uint64(node.Capacity), cause, effect,
		); err != nil {
			return fmt.Errorf("insert node %q: %w", id, err)
		}
	}

	for _, l := range cs.Links() {
		if _, err := tx.Exec(
			`INSERT INTO links (structure_id, source, target, kind, weight)
			 VALUES (?, ?, ?, ?, ?)`,
			cs.ID, l.Source, l.Target, int(l.Kind), l.Weight,
		); err != nil {
			return fmt.Errorf("insert link %s->%s: %w", l.Source, l.Target, err)
		}
	}

	for _, inh := range cs.Inhibitors() {
		if _, err := tx.Exec(
			`INSERT INTO inhibitors (structure_id, source, target) VALUES (?, ?, ?)`,
			cs.ID, inh.Source, inh.Target,
		); err != nil {
			return fmt.Errorf("insert inhibitor %s-|%s: %w", inh.Source, inh.Target, err)
		}
	}

	return tx.Commit()
}

// Load retrieves a structure snapshot by its ID.
func (s *Store) Load(id string) (*ces.Structure, error) {
	row := s.db.QueryRow(`SELECT id, name FROM structures WHERE id = ?`, id)
	return s.scanStructure(row)
}

// LoadByName retrieves the most recently saved structure with the given name.
func (s *Store) LoadByName(name string) (*ces.Structure, error) {
	row := s.db.QueryRow(
		`SELECT id, name FROM structures WHERE name = ? ORDER BY saved_at DESC LIMIT 1`,
		name,
	)
	return s.scanStructure(row)
}

func (s *Store) scanStructure(row *sql.Row) (*ces.Structure, error) {
	var id, name string
	if err := row.Scan(&id, &name); err != nil {
		return nil, err
	}

	cs := ces.NewStructure(name)
	cs.ID = id

	rows, err := s.db.Query(
		`SELECT node_id, label, capacity, cause, effect
		 FROM nodes WHERE structure_id = ? ORDER BY node_id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var nodeID, label string
		var capacity uint64
		var cause, effect sql.NullString
		if err := rows.Scan(&nodeID, &label, &capacity, &cause, &effect); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		node := cs.EnsureNode(nodeID)
		node.Label = label
		node.Capacity = ces.Capacity(capacity)
		if node.Cause, err = decodePoly(cause); err != nil {
			return nil, fmt.Errorf("decode cause of %q: %w", nodeID, err)
		}
		if node.Effect, err = decodePoly(effect); err != nil {
			return nil, fmt.Errorf("decode effect of %q: %w", nodeID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	linkRows, err := s.db.Query(
		`SELECT source, target, kind, weight
		 FROM links WHERE structure_id = ? ORDER BY source, target`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var source, target string
		var kind int
		var weight uint64
		if err := linkRows.Scan(&source, &target, &kind, &weight); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		switch ces.LinkKind(kind) {
		case ces.EffectOnly:
			cs.AddEffectLink(source, target)
		case ces.CauseOnly:
			cs.AddCauseLink(source, target)
		default:
			cs.AddEffectLink(source, target)
			cs.AddCauseLink(source, target)
		}
		cs.SetWeight(source, target, weight)
	}
	if err := linkRows.Err(); err != nil {
		return nil, err
	}

	inhRows, err := s.db.Query(
		`SELECT source, target FROM inhibitors WHERE structure_id = ? ORDER BY source, target`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("query inhibitors: %w", err)
	}
	defer inhRows.Close()

	for inhRows.Next() {
		var source, target string
		if err := inhRows.Scan(&source, &target); err != nil {
			return nil, fmt.Errorf("scan inhibitor: %w", err)
		}
		cs.AddInhibitor(source, target)
	}
	return cs, inhRows.Err()
}

// List returns catalog records for all saved structures, newest first.
func (s *Store) List() ([]*Record, error) {
	rows, err := s.db.Query(
		`SELECT st.id, st.name, st.saved_at,
		 (SELECT COUNT(*) FROM nodes n WHERE n.structure_id = st.id),
		 (SELECT COUNT(*) FROM links l WHERE l.structure_id = st.id)
		 FROM structures st ORDER BY st.saved_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.SavedAt, &r.Nodes, &r.Links); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

// Delete removes a structure snapshot and its rows.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"inhibitors", "links", "nodes", "structures"} {
		col := "structure_id"
		if table == "structures" {
			col = "id"
		}
		if _, err := tx.Exec(
			fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, col), id,
		); err != nil {
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Polynomials are stored as JSON monomial lists alongside a plain flag.
type polyRow struct {
	Monomials [][]string `json:"monomials"`
	Plain     bool       `json:"plain"`
}

func encodePoly(p polynomial.Polynomial) (string, error) {
	row := polyRow{Plain: p.IsPlain()}
	for _, m := range p.Monomials() {
		row.Monomials = append(row.Monomials, []string(m))
	}
	data, err := json.Marshal(row)
	return string(data), err
}

func decodePoly(v sql.NullString) (polynomial.Polynomial, error) {
	if !v.Valid || v.String == "" {
		return polynomial.New(), nil
	}
	var row polyRow
	if err := json.Unmarshal([]byte(v.String), &row); err != nil {
		return polynomial.Polynomial{}, err
	}
	monos := make([]polynomial.Monomial, len(row.Monomials))
	for i, m := range row.Monomials {
		monos[i] = polynomial.Monomial(m)
	}
	return polynomial.FromParts(monos, row.Plain), nil
}
