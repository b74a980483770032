package sessions

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/f1telemetry-replay-go/log"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/api"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/cache"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/config"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/db/postgres"
	"github.com/mpapenbr/f1telemetry-replay-go/pkg/fetch"
)

var year int

func NewSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "list the sessions of a year with their derived status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSessions()
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(),
		"Year to list sessions for")
	return cmd
}

func listSessions() error {
	opts := []fetch.Option{
		fetch.WithClient(api.NewClient(config.APIBaseURL, api.WithQueue(api.NewQueue()))),
		fetch.WithCache(cache.NewMemoryCache()),
	}
	if config.DB != "" {
		if pool, err := postgres.InitWithURL(config.DB); err == nil {
			defer pool.Close()
			opts = append(opts, fetch.WithQuerier(pool))
		} else {
			log.Warn("could not connect database, using api only",
				log.ErrorField(err))
		}
	}
	svc := fetch.NewService(opts...)

	data := svc.Sessions(context.Background(), year)
	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tCIRCUIT\tSTART\tSTATUS")
	for i := range data {
		s := &data[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.SessionKey,
			s.SessionName,
			s.CircuitShortName,
			s.DateStart.Format(time.RFC3339),
			s.Status(now))
	}
	return w.Flush()
}
