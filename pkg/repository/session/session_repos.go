//nolint:whitespace //can't make both the linter and editor happy :(
package session

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

// little helper
const selector = string(`
select session_key, session_name, session_type, date_start, year,
       circuit_key, circuit_short_name
from session`)

func LoadByYear(
	ctx context.Context,
	conn repository.Querier,
	year int,
) ([]model.Session, error) {
	rows, err := conn.Query(ctx,
		selector+" where year=$1 order by date_start desc", year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.Session, 0)
	for rows.Next() {
		var item model.Session
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func LoadByKey(
	ctx context.Context,
	conn repository.Querier,
	sessionKey int,
) (*model.Session, error) {
	row := conn.QueryRow(ctx, selector+" where session_key=$1", sessionKey)
	var item model.Session
	if err := scan(&item, row); err != nil {
		return nil, err
	}
	return &item, nil
}

func scan(e *model.Session, row pgx.Row) error {
	return row.Scan(&e.SessionKey, &e.SessionName, &e.SessionType,
		&e.DateStart.Time, &e.Year, &e.CircuitKey, &e.CircuitShortName)
}
