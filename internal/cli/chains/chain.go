package chains

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daychain/internal/chain"
	"github.com/julianstephens/daychain/internal/cli"
	"github.com/julianstephens/daychain/internal/constants"
)

type ChainCmd struct {
	Show ChainShowCmd `cmd:"" help:"Show the recent chain and the current streak." default:"1"`
	Mark ChainMarkCmd `cmd:"" help:"Toggle a day in the chain."`
}

type ChainMarkCmd struct {
	Date string `arg:"" optional:"" help:"Day to toggle (YYYY-MM-DD). Defaults to today."`
}

func (c *ChainMarkCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	date := chain.Key(now)
	if c.Date != "" {
		d, err := time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", c.Date)
		}
		date = chain.Key(d)
	}

	updated := chain.Toggle(ctx.State.LoadChain(), date)
	if err := ctx.State.SaveChain(updated); err != nil {
		return fmt.Errorf("failed to save chain: %w", err)
	}

	if chain.Has(updated, date) {
		fmt.Printf("✓ Marked %s\n", date)
	} else {
		fmt.Printf("Unmarked %s\n", date)
	}
	fmt.Printf("Streak: %d days\n", chain.Streak(updated, now))
	return nil
}

type ChainShowCmd struct {
	Days int `help:"Number of days to show. Defaults to history.days from config.yaml."`
}

func (c *ChainShowCmd) Run(ctx *cli.Context) error {
	days := c.Days
	if days <= 0 {
		days = ctx.Config.History.Days
	}

	now := ctx.Clock()
	current := ctx.State.LoadChain()
	fmt.Println(FormatAlmanac(chain.Window(current, now, days)))
	fmt.Printf("Streak: %d days (%d marked in total)\n", chain.Streak(current, now), len(current))
	return nil
}

// FormatAlmanac renders days as rows of seven cells, oldest first.
func FormatAlmanac(days []chain.Day) string {
	var b strings.Builder
	for i, d := range days {
		if i > 0 && i%7 == 0 {
			b.WriteString("\n")
		}
		cell := "·"
		if d.Marked {
			cell = "■"
		}
		if d.IsToday {
			cell = "[" + cell + "]"
		} else {
			cell = " " + cell + " "
		}
		b.WriteString(cell)
	}
	if len(days) > 0 {
		fmt.Fprintf(&b, "\n%s … %s", days[0].Date, days[len(days)-1].Date)
	}
	return b.String()
}
