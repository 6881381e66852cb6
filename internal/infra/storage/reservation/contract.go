package reservation

import "github.com/m04kA/SMC-ReservationService/pkg/txmanager"

// DBExecutor *sqlx.DB или *sqlx.Tx
type DBExecutor = txmanager.Executor
