// Command teams splits a YAML roster into teams and prints the share text.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/futsal/internal/domain/allocation"
	"github.com/okian/futsal/internal/domain/share"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		os.Stderr.WriteString("teams: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("teams", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		rosterPath = fs.String("roster", "roster.yaml", "YAML roster file")
		teamCount  = fs.Int("teams", allocation.MinTeams, "Number of teams (2 or 3)")
		strategy   = fs.String("strategy", "tactical", "Allocation strategy: tactical or elite_goalie")
		mode       = fs.String("mode", "fair", "Tactical ordering: fair or fun")
		minPerTeam = fs.Int("min", allocation.DefaultMinPerTeam, "Minimum present players per team")
		seed       = fs.Int64("seed", 0, "Random seed (0 seeds from time)")
		telegram   = fs.Bool("telegram", false, "Also print a Telegram share link")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := allocation.ParseStrategy(*strategy)
	if err != nil {
		return err
	}
	md, err := allocation.ParseMode(*mode)
	if err != nil {
		return err
	}

	present, err := loadRoster(*rosterPath)
	if err != nil {
		return err
	}

	a := allocation.New(allocation.WithMinPerTeam(*minPerTeam), allocation.WithSeed(*seed))
	alloc, err := a.Allocate(present, *teamCount, st, md)
	if err != nil {
		return err
	}

	text := share.Text(alloc.Teams)
	if _, err := fmt.Fprintln(out, text); err != nil {
		return err
	}
	if *telegram {
		if _, err := fmt.Fprintln(out, "\n"+share.TelegramURL(text)); err != nil {
			return err
		}
	}
	return nil
}
