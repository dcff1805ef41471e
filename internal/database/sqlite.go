package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"rem-go/internal/rem"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// userTables lists the data-carrying tables in schema order. Export, import
// and the backup sidecar all work from this list; the migrate bookkeeping
// table is deliberately absent.
var userTables = []string{"owners", "properties", "reference_data"}

// timeLayout matches the string form go-sqlite3 writes for time.Time binds.
const timeLayout = "2006-01-02 15:04:05.999999999-07:00"

// SQLiteStore implements rem.Store on a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
// path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStoreFromDB wraps an existing connection. The caller is
// responsible for ensuring the connection is properly configured.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, path: ":memory:"}
}

// OpenConnection opens and configures a SQLite connection with the settings
// the store relies on. Exported for tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must be
	// pinned to a single one or writes land in different databases.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Whole-file backup copies require exactly one database file on disk,
	// so WAL (which adds sidecar files) stays off. busy_timeout covers the
	// brief window where restore reopens the connection.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return db, nil
}

// DB exposes the underlying connection for migrations.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

// Owner operations

const ownerColumns = "code, name, phone, note, created_at"

func (s *SQLiteStore) CreateOwner(o *rem.Owner) error {
	_, err := s.db.Exec(
		"INSERT INTO owners (code, name, phone, note, created_at) VALUES (?, ?, ?, ?, ?)",
		o.Code, o.Name, o.Phone, o.Note, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting owner: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetOwner(code string) (*rem.Owner, error) {
	row := s.db.QueryRow("SELECT "+ownerColumns+" FROM owners WHERE code = ?", code)
	o, err := scanOwner(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting owner: %w", err)
	}
	return o, nil
}

func (s *SQLiteStore) ListOwners() ([]*rem.Owner, error) {
	rows, err := s.db.Query("SELECT " + ownerColumns + " FROM owners ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("selecting owners: %w", err)
	}
	defer rows.Close()
	return collectOwners(rows)
}

func (s *SQLiteStore) ListOwnerCodes() ([]string, error) {
	return s.listStrings("SELECT code FROM owners")
}

func (s *SQLiteStore) UpdateOwner(o *rem.Owner) error {
	res, err := s.db.Exec(
		"UPDATE owners SET name = ?, phone = ?, note = ? WHERE code = ?",
		o.Name, o.Phone, o.Note, o.Code,
	)
	if err != nil {
		return fmt.Errorf("updating owner: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteOwner(code string) error {
	res, err := s.db.Exec("DELETE FROM owners WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("deleting owner: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) SearchOwners(term string) ([]*rem.Owner, error) {
	pattern := "%" + term + "%"
	rows, err := s.db.Query(
		"SELECT "+ownerColumns+" FROM owners WHERE name LIKE ? OR phone LIKE ? ORDER BY name",
		pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("searching owners: %w", err)
	}
	defer rows.Close()
	return collectOwners(rows)
}

func (s *SQLiteStore) OwnerNameExists(name, excludeCode string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM owners WHERE LOWER(name) = LOWER(?) AND code <> ?",
		name, excludeCode,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting owners by name: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteStore) CountOwnerProperties(ownerCode string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM properties WHERE owner_code = ?", ownerCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting owner properties: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) CountOwnersWithProperties() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(DISTINCT owner_code) FROM properties").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting owners with properties: %w", err)
	}
	return count, nil
}

// Property operations

const propertyColumns = `p.code, p.owner_code, p.type_code, p.build_type_code, p.offer_type_code,
	p.province_code, p.region_code, p.address, p.area, p.facade, p.depth,
	p.bedrooms, p.bathrooms, p.corner, p.year_built, p.price, p.status,
	p.photos, p.note, p.created_at, p.updated_at, o.name, o.phone`

const propertySelect = "SELECT " + propertyColumns + " FROM properties p LEFT JOIN owners o ON o.code = p.owner_code"

func (s *SQLiteStore) CreateProperty(p *rem.Property) error {
	_, err := s.db.Exec(
		`INSERT INTO properties (code, owner_code, type_code, build_type_code, offer_type_code,
			province_code, region_code, address, area, facade, depth, bedrooms, bathrooms,
			corner, year_built, price, status, photos, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Code, p.OwnerCode, p.TypeCode, p.BuildTypeCode, p.OfferTypeCode,
		p.ProvinceCode, p.RegionCode, p.Address, p.Area, p.Facade, p.Depth,
		p.Bedrooms, p.Bathrooms, p.Corner, p.YearBuilt, p.Price, p.Status,
		joinPhotos(p.Photos), p.Note, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProperty(code string) (*rem.Property, error) {
	row := s.db.QueryRow(propertySelect+" WHERE p.code = ?", code)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("selecting property: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) ListProperties() ([]*rem.Property, error) {
	rows, err := s.db.Query(propertySelect + " ORDER BY p.created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("selecting properties: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (s *SQLiteStore) ListPropertiesByOwner(ownerCode string) ([]*rem.Property, error) {
	rows, err := s.db.Query(propertySelect+" WHERE p.owner_code = ? ORDER BY p.created_at DESC", ownerCode)
	if err != nil {
		return nil, fmt.Errorf("selecting properties by owner: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

func (s *SQLiteStore) ListPropertyCodes() ([]string, error) {
	return s.listStrings("SELECT code FROM properties")
}

func (s *SQLiteStore) UpdateProperty(p *rem.Property) error {
	res, err := s.db.Exec(
		`UPDATE properties SET owner_code = ?, type_code = ?, build_type_code = ?,
			offer_type_code = ?, province_code = ?, region_code = ?, address = ?,
			area = ?, facade = ?, depth = ?, bedrooms = ?, bathrooms = ?, corner = ?,
			year_built = ?, price = ?, status = ?, photos = ?, note = ?, updated_at = ?
		WHERE code = ?`,
		p.OwnerCode, p.TypeCode, p.BuildTypeCode, p.OfferTypeCode,
		p.ProvinceCode, p.RegionCode, p.Address, p.Area, p.Facade, p.Depth,
		p.Bedrooms, p.Bathrooms, p.Corner, p.YearBuilt, p.Price, p.Status,
		joinPhotos(p.Photos), p.Note, p.UpdatedAt, p.Code,
	)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteProperty(code string) error {
	res, err := s.db.Exec("DELETE FROM properties WHERE code = ?", code)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) SearchProperties(q rem.PropertySearch) ([]*rem.Property, error) {
	query := propertySelect
	var conds []string
	var args []any

	if q.Term != "" {
		pattern := "%" + q.Term + "%"
		conds = append(conds, "(p.code LIKE ? OR p.address LIKE ? OR p.note LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	eq := func(column, value string) {
		if value != "" {
			conds = append(conds, column+" = ?")
			args = append(args, value)
		}
	}
	eq("p.type_code", q.TypeCode)
	eq("p.build_type_code", q.BuildTypeCode)
	eq("p.offer_type_code", q.OfferTypeCode)
	eq("p.province_code", q.ProvinceCode)
	eq("p.region_code", q.RegionCode)
	if q.OwnerName != "" {
		conds = append(conds, "o.name LIKE ?")
		args = append(args, "%"+q.OwnerName+"%")
	}
	if q.MinArea > 0 {
		conds = append(conds, "p.area >= ?")
		args = append(args, q.MinArea)
	}
	if q.MaxArea > 0 {
		conds = append(conds, "p.area <= ?")
		args = append(args, q.MaxArea)
	}
	if q.MinBedrooms > 0 {
		conds = append(conds, "p.bedrooms >= ?")
		args = append(args, q.MinBedrooms)
	}
	if q.MinBathrooms > 0 {
		conds = append(conds, "p.bathrooms >= ?")
		args = append(args, q.MinBathrooms)
	}
	if q.Corner != nil {
		conds = append(conds, "p.corner = ?")
		args = append(args, *q.Corner)
	}
	if q.MinYear > 0 {
		conds = append(conds, "p.year_built >= ?")
		args = append(args, q.MinYear)
	}
	if q.MaxYear > 0 {
		conds = append(conds, "p.year_built <= ? AND p.year_built > 0")
		args = append(args, q.MaxYear)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching properties: %w", err)
	}
	defer rows.Close()
	return collectProperties(rows)
}

// Reference operations

func (s *SQLiteStore) ListReference(category string) ([]*rem.ReferenceEntry, error) {
	rows, err := s.db.Query(
		"SELECT category, code, name, parent_code FROM reference_data WHERE category = ? ORDER BY code",
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("selecting reference entries: %w", err)
	}
	defer rows.Close()

	var entries []*rem.ReferenceEntry
	for rows.Next() {
		var e rem.ReferenceEntry
		if err := rows.Scan(&e.Category, &e.Code, &e.Name, &e.ParentCode); err != nil {
			return nil, fmt.Errorf("scanning reference entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) GetReferenceName(category, code string) (string, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM reference_data WHERE category = ? AND code = ?",
		category, code,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("selecting reference name: %w", err)
	}
	return name, nil
}

func (s *SQLiteStore) CreateReferenceEntry(e *rem.ReferenceEntry) error {
	_, err := s.db.Exec(
		"INSERT INTO reference_data (category, code, name, parent_code) VALUES (?, ?, ?, ?)",
		e.Category, e.Code, e.Name, e.ParentCode,
	)
	if err != nil {
		return fmt.Errorf("inserting reference entry: %w", err)
	}
	return nil
}

// Statistics

func (s *SQLiteStore) GetStatistics() (*rem.Statistics, error) {
	stats := &rem.Statistics{
		ByType:     map[string]int{},
		ByProvince: map[string]int{},
		ByOffer:    map[string]int{},
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM owners").Scan(&stats.TotalOwners); err != nil {
		return nil, fmt.Errorf("counting owners: %w", err)
	}
	err := s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(area), 0), COALESCE(AVG(area), 0) FROM properties",
	).Scan(&stats.TotalProperties, &stats.TotalArea, &stats.AverageArea)
	if err != nil {
		return nil, fmt.Errorf("aggregating properties: %w", err)
	}

	groups := []struct {
		column string
		dest   map[string]int
	}{
		{"type_code", stats.ByType},
		{"province_code", stats.ByProvince},
		{"offer_type_code", stats.ByOffer},
	}
	for _, g := range groups {
		if err := s.countGroup(g.column, g.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (s *SQLiteStore) countGroup(column string, dest map[string]int) error {
	rows, err := s.db.Query(
		"SELECT " + column + ", COUNT(*) FROM properties WHERE " + column + " <> '' GROUP BY " + column,
	)
	if err != nil {
		return fmt.Errorf("grouping by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var code string
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return fmt.Errorf("scanning %s group: %w", column, err)
		}
		dest[code] = count
	}
	return rows.Err()
}

// Data portability

func (s *SQLiteStore) Tables() ([]string, error) {
	out := make([]string, len(userTables))
	copy(out, userTables)
	return out, nil
}

// DumpTable returns the raw column names and row values of a known table.
// name is validated against the schema before interpolation.
func (s *SQLiteStore) DumpTable(name string) ([]string, [][]any, error) {
	if !knownTable(name) {
		return nil, nil, fmt.Errorf("unknown table: %s", name)
	}

	rows, err := s.db.Query("SELECT * FROM " + name)
	if err != nil {
		return nil, nil, fmt.Errorf("selecting %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("reading columns: %w", err)
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			if t, ok := v.(time.Time); ok {
				// The driver's own storage layout, so re-importing an
				// exported value scans back into a TIMESTAMP column.
				values[i] = t.Format(timeLayout)
			}
		}
		out = append(out, values)
	}
	return columns, out, rows.Err()
}

func (s *SQLiteStore) InsertOrReplaceRow(table string, columns []string, values []any) error {
	if !knownTable(table) {
		return fmt.Errorf("unknown table: %s", table)
	}
	if len(columns) == 0 || len(columns) != len(values) {
		return fmt.Errorf("mismatched columns and values for %s", table)
	}
	for _, col := range columns {
		if !validIdentifier(col) {
			return fmt.Errorf("invalid column name: %q", col)
		}
	}

	quoted := make([]string, len(columns))
	holders := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = `"` + col + `"`
		holders[i] = "?"
	}
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table, strings.Join(quoted, ", "), strings.Join(holders, ", "),
	)
	if _, err := s.db.Exec(query, values...); err != nil {
		return fmt.Errorf("upserting into %s: %w", table, err)
	}
	return nil
}

func (s *SQLiteStore) ExecScript(script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(script); err != nil {
		return fmt.Errorf("executing script: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing script: %w", err)
	}
	return nil
}

// Lifecycle

func (s *SQLiteStore) Ping() error {
	return s.db.Ping()
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reopen re-establishes the connection after Close. Restore uses this after
// overwriting the database file.
func (s *SQLiteStore) Reopen() error {
	db, err := OpenConnection(s.path)
	if err != nil {
		return fmt.Errorf("reopening store: %w", err)
	}
	s.db = db
	return nil
}

// helpers

func (s *SQLiteStore) listStrings(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("selecting codes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning code: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (*rem.Owner, error) {
	var o rem.Owner
	// phone is nullable: imported rows may carry NULL instead of ''.
	var phone sql.NullString
	if err := row.Scan(&o.Code, &o.Name, &phone, &o.Note, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Phone = phone.String
	return &o, nil
}

func collectOwners(rows *sql.Rows) ([]*rem.Owner, error) {
	var out []*rem.Owner
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanProperty(row rowScanner) (*rem.Property, error) {
	var p rem.Property
	var photos string
	var ownerName, ownerPhone sql.NullString
	err := row.Scan(
		&p.Code, &p.OwnerCode, &p.TypeCode, &p.BuildTypeCode, &p.OfferTypeCode,
		&p.ProvinceCode, &p.RegionCode, &p.Address, &p.Area, &p.Facade, &p.Depth,
		&p.Bedrooms, &p.Bathrooms, &p.Corner, &p.YearBuilt, &p.Price, &p.Status,
		&photos, &p.Note, &p.CreatedAt, &p.UpdatedAt, &ownerName, &ownerPhone,
	)
	if err != nil {
		return nil, err
	}
	p.Photos = splitPhotos(photos)
	p.OwnerName = ownerName.String
	p.OwnerPhone = ownerPhone.String
	return &p, nil
}

func collectProperties(rows *sql.Rows) ([]*rem.Property, error) {
	var out []*rem.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return rem.ErrNotFound
	}
	return nil
}

func joinPhotos(photos []string) string {
	return strings.Join(photos, ";")
}

func splitPhotos(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

func knownTable(name string) bool {
	for _, t := range userTables {
		if t == name {
			return true
		}
	}
	return false
}

func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return false
	}
	return true
}

// Compile-time check that SQLiteStore implements rem.Store.
var _ rem.Store = (*SQLiteStore)(nil)
