//nolint:whitespace //can't make both the linter and editor happy :(
package radio

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

// little helper
const selector = string(`
select date, driver_number, recording_url, meeting_key, session_key
from team_radio`)

func LoadBySessionAndDriver(
	ctx context.Context,
	conn repository.Querier,
	sessionKey, driverNumber int,
) ([]model.TeamRadio, error) {
	rows, err := conn.Query(ctx,
		selector+" where session_key=$1 and driver_number=$2 order by date",
		sessionKey, driverNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.TeamRadio, 0)
	for rows.Next() {
		var item model.TeamRadio
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func scan(e *model.TeamRadio, row pgx.Row) error {
	return row.Scan(&e.Date.Time, &e.DriverNumber, &e.RecordingURL,
		&e.MeetingKey, &e.SessionKey)
}
