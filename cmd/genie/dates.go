package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/genielabs/genie-admin/pkg/models"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Curate scheduled dates",
}

var listDatesCmd = &cobra.Command{
	Use:   "list",
	Short: "List dates curated by you (or everyone with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")

		return withSession(true, func(ctx context.Context, s *session) error {
			p := &models.ListDatesParams{
				Status: models.DateStatus(status),
				Page:   page,
			}
			if !all {
				p.GenieID = s.store.Snapshot().Admin.AdminID
			}
			s.store.FetchGenieDates(ctx, p)
			snap := s.store.Snapshot()
			if err := stateError(snap); err != nil {
				return err
			}
			renderDates(os.Stdout, snap)
			return nil
		})(cmd, args)
	},
}

// parseWhen accepts an RFC 3339 timestamp or an offset from now such as "48h".
func parseWhen(v string) (time.Time, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return nowFunc().Add(d), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at %q: want RFC 3339 or a duration like 48h", v)
	}
	return t, nil
}

var createDateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Schedule a date between two users",
	Example: "genie dates create --user1 <id> --user2 <id> --at 72h --duration 90 --type dinner",
	RunE: func(cmd *cobra.Command, args []string) error {
		user1, _ := cmd.Flags().GetString("user1")
		user2, _ := cmd.Flags().GetString("user2")
		at, _ := cmd.Flags().GetString("at")
		duration, _ := cmd.Flags().GetInt("duration")
		dateType, _ := cmd.Flags().GetString("type")
		location, _ := cmd.Flags().GetString("location")
		notes, _ := cmd.Flags().GetString("notes")

		when, err := parseWhen(at)
		if err != nil {
			return err
		}
		req := &models.CreateDateRequest{
			User1ID:         user1,
			User2ID:         user2,
			ScheduledTime:   when.Unix(),
			DurationMinutes: duration,
			DateType:        dateType,
			Notes:           notes,
		}
		if location != "" {
			req.Location = &location
		}

		return withSession(true, func(ctx context.Context, s *session) error {
			date, err := s.store.CreateDate(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("Scheduled date %s\n\n", date.ID)
			renderDates(os.Stdout, s.store.Snapshot())
			return nil
		})(cmd, args)
	},
}

var updateDateCmd = &cobra.Command{
	Use:   "update <date-id>",
	Short: "Change a date's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		var notes *string
		if cmd.Flags().Changed("notes") {
			n, _ := cmd.Flags().GetString("notes")
			notes = &n
		}
		dateID := args[0]

		return withSession(true, func(ctx context.Context, s *session) error {
			if err := s.store.UpdateDateStatus(ctx, dateID, models.DateStatus(status), notes); err != nil {
				return err
			}
			fmt.Printf("Date %s is now %s\n\n", dateID, status)
			renderDates(os.Stdout, s.store.Snapshot())
			return nil
		})(cmd, args)
	},
}

func init() {
	datesCmd.AddCommand(listDatesCmd, createDateCmd, updateDateCmd)

	listDatesCmd.Flags().Bool("all", false, "list dates of every genie")
	listDatesCmd.Flags().String("status", "", "filter by status (scheduled, completed, cancelled)")
	listDatesCmd.Flags().Int("page", 1, "page number")

	createDateCmd.Flags().String("user1", "", "first user id")
	createDateCmd.Flags().String("user2", "", "second user id")
	createDateCmd.Flags().String("at", "24h", "start time, RFC 3339 or offset from now")
	createDateCmd.Flags().Int("duration", 60, "duration in minutes")
	createDateCmd.Flags().String("type", "coffee", "date type")
	createDateCmd.Flags().String("location", "", "venue")
	createDateCmd.Flags().String("notes", "", "notes for the couple")

	updateDateCmd.Flags().String("status", "", "scheduled, completed or cancelled")
	updateDateCmd.Flags().String("notes", "", "replace the date notes")
}
