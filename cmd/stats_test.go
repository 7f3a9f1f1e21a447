package cmd

import (
	"bytes"
	"strings"
	"testing"

	"worktime/accounting"
)

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, accounting.StatsView{
		LoggedToday:         "7h 30m",
		LoggedThisWeek:      "7h 30m",
		TodoToday:           "8h 0m",
		TodoThisWeek:        "40h 0m",
		RemainingToday:      "30m",
		RemainingThisWeek:   "32h 30m",
		Overtime:            "-30m",
		EstimatedFinishTime: "18:30",
	})

	out := buf.String()
	for _, want := range []string{
		"Remaining today:   30m of 8h 0m\n",
		"Remaining week:    32h 30m of 40h 0m\n",
		"Overtime:          -30m\n",
		"Estimated finish:  18:30\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMigrateArgs(t *testing.T) {
	for _, args := range [][]string{nil, {"up"}, {"down"}, {"status"}} {
		if err := migrateCmd.Args(migrateCmd, args); err != nil {
			t.Errorf("Args(%v) = %v, want nil", args, err)
		}
	}
	for _, args := range [][]string{{"sideways"}, {"up", "down"}} {
		if err := migrateCmd.Args(migrateCmd, args); err == nil {
			t.Errorf("Args(%v) = nil, want error", args)
		}
	}
}
