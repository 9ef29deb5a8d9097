package index

// DocumentIndex defines the catalog operations. Consumers depend on this
// interface rather than the concrete *DB type.
type DocumentIndex interface {
	UpsertDocument(d DocumentRow) error
	DeleteDocument(name string) error
	GetChecksum(name string) (string, error)
	GetDocument(name string) (*DocumentRow, error)
	ListDocuments(limit, offset int, sort string) ([]DocumentRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	AllChecksums() (map[string]string, error)
	Ping() error
	Close() error
}

// Verify *DB satisfies DocumentIndex at compile time.
var _ DocumentIndex = (*DB)(nil)
