//nolint:whitespace //can't make both the linter and editor happy :(
package driver

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

// little helper
const selector = string(`
select driver_number, full_name, name_acronym, team_name, session_key
from driver`)

func LoadBySession(
	ctx context.Context,
	conn repository.Querier,
	sessionKey int,
) ([]model.Driver, error) {
	rows, err := conn.Query(ctx,
		selector+" where session_key=$1 order by driver_number", sessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.Driver, 0)
	for rows.Next() {
		var item model.Driver
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func scan(e *model.Driver, row pgx.Row) error {
	return row.Scan(&e.DriverNumber, &e.FullName, &e.NameAcronym,
		&e.TeamName, &e.SessionKey)
}
