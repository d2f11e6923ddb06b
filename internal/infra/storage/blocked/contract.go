package blocked

import "github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"

// DBExecutor *sql.DB, *dbmetrics.DB или транзакция
type DBExecutor = dbmetrics.DBExecutor
