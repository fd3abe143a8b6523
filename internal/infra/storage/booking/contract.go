package booking

import (
	"github.com/mzavt/PWS-SchedulerService/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов к базе данных
type DBExecutor = dbmetrics.DBExecutor
