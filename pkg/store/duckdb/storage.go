package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const reportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		state VARCHAR NOT NULL,
		anchor VARCHAR NOT NULL,
		generated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		columns JSON NOT NULL,
		PRIMARY KEY (state, anchor)
	);
`

var bootQueries = []string{
	reportsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
