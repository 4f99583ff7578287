package storage

// Logical keys in the local store. The names mirror the browser storage keys
// of the original dashboard so an exported store file stays recognizable.
const (
	KeySearchHistory = "drillingSearchHistory"
	KeyProjects      = "explorationProjects"
	KeyMetricsPrefix = "projectFinancialMetrics:"
	KeyLoggedIn      = "isLoggedIn"
)
