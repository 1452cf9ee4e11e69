package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hekevintran/kinetophone/internal/clock"
	"github.com/hekevintran/kinetophone/internal/models"
	"github.com/spf13/cobra"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	At       int64
	From     int64
	To       int64
	Channels []string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query FILE...",
		Short: "List the cues active at a time or overlapping a range",
		Long: `Query a timeline without playing it.

With --at, prints the cues whose [start, end) contains the time. With
--from and --to, prints the cues overlapping the range; a cue ending
exactly at --to is left out.

Examples:
  kinetophone query --at 1500 show.yaml
  kinetophone query --from 0 --to 10000 --channel captions show.yaml
  kinetophone query --at 1500 --format json captions.srt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd, args)
		},
	}

	cmd.Flags().Int64Var(&opts.At, "at", 0, "point in milliseconds")
	cmd.Flags().Int64Var(&opts.From, "from", 0, "range start in milliseconds")
	cmd.Flags().Int64Var(&opts.To, "to", 0, "range end in milliseconds")
	cmd.Flags().StringSliceVar(&opts.Channels, "channel", nil, "restrict to channel (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("at", "from")
	cmd.MarkFlagsMutuallyExclusive("at", "to")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsOneRequired("at", "from")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command, args []string) error {
	tl, err := loadTimeline(args, opts.Duration)
	if err != nil {
		return err
	}

	eng, err := newEngine(clock.NewManual(), opts.Config, tl)
	if err != nil {
		return err
	}

	var cues []models.Cue
	if cmd.Flags().Changed("at") {
		cues, err = eng.TimingsAt(opts.At, opts.Channels...)
	} else {
		cues, err = eng.TimingsBetween(opts.From, opts.To, opts.Channels...)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "query failed", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cues)
	}

	for _, cue := range cues {
		line := fmt.Sprintf("%s [%d,%d)", cue.Name, cue.Start, cueEnd(cue))
		if cue.Data != nil {
			line += " " + formatData(cue.Data)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
