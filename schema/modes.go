package schema

// DatabaseBackend identifies which database engine backs the run store.
type DatabaseBackend string

// Supported database backends.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// OutputMode identifies how analysis results are rendered.
type OutputMode string

// Supported output modes.
const (
	TextOut OutputMode = "text"
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)
