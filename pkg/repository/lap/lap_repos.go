//nolint:whitespace //can't make both the linter and editor happy :(
package lap

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/f1telemetry-replay-go/pkg/model"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/repository"
)

// little helper
const selector = string(`
select driver_number, lap_number, date_start,
       coalesce(duration_sector_1,0), coalesce(duration_sector_2,0),
       coalesce(duration_sector_3,0), coalesce(lap_duration,0), session_key
from lap_timing`)

func LoadBySessionAndDriver(
	ctx context.Context,
	conn repository.Querier,
	sessionKey, driverNumber int,
) ([]model.Lap, error) {
	rows, err := conn.Query(ctx,
		selector+" where session_key=$1 and driver_number=$2 order by lap_number",
		sessionKey, driverNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.Lap, 0)
	for rows.Next() {
		var item model.Lap
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func scan(e *model.Lap, row pgx.Row) error {
	return row.Scan(&e.DriverNumber, &e.LapNumber, &e.DateStart.Time,
		&e.DurationSector1, &e.DurationSector2, &e.DurationSector3,
		&e.LapDuration, &e.SessionKey)
}
