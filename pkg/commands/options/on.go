package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/mindgrid/pkg/timeutil"
)

// OnOptions picks a day, defaulting to today.
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2025-02-28", --on=today or --on=tomorrow.`)
}

// GetOn returns the start of the chosen day.
func (o *OnOptions) GetOn(now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return timeutil.StartOfDay(now), nil
	}
	return timeutil.ParseDay(o.OnString, now)
}

// DueOptions sets an optional due or target date.
type DueOptions struct {
	DueString string
}

func AddDueArgs(cmd *cobra.Command, o *DueOptions, name string) {
	cmd.Flags().StringVar(&o.DueString, name, "",
		`Specify a date, example: --`+name+`="2025-02-28" or --`+name+`=tomorrow.`)
}

// GetDue returns nil when no date was given.
func (o *DueOptions) GetDue(now time.Time) (*time.Time, error) {
	if o.DueString == "" {
		return nil, nil
	}
	t, err := timeutil.ParseDay(o.DueString, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
