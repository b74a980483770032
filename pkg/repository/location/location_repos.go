//nolint:whitespace //can't make both the linter and editor happy :(
package location

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

// little helper
const selector = string(`
select date, driver_number, x, y, z, meeting_key, session_key
from location_data`)

// LoadRange reads the location samples of one time window.
func LoadRange(
	ctx context.Context,
	conn repository.Querier,
	sessionKey, driverNumber int,
	from, to time.Time,
) ([]model.LocationData, error) {
	rows, err := conn.Query(ctx,
		selector+` where session_key=$1 and driver_number=$2
 and date >= $3 and date < $4 order by date`,
		sessionKey, driverNumber, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.LocationData, 0)
	for rows.Next() {
		var item model.LocationData
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func scan(e *model.LocationData, row pgx.Row) error {
	return row.Scan(&e.Date.Time, &e.DriverNumber, &e.X, &e.Y, &e.Z,
		&e.MeetingKey, &e.SessionKey)
}
