package initializers

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// ConnectDB opens the Postgres database used by the postgres data backend.
func ConnectDB(dsn string) *goqu.Database {
	if dsn == "" {
		log.Fatal().Msg("DB_URL must be set when DATA_BACKEND=postgres")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}

	err = db.Ping()
	if err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	return goqu.New("postgres", db)
}
