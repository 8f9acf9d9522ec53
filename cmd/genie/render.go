package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/genielabs/genie-admin/pkg/adminstore"
	"github.com/genielabs/genie-admin/pkg/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func verified(u models.UserSummary) string {
	var flags []string
	if u.EmailVerified {
		flags = append(flags, "email")
	}
	if u.PhoneVerified {
		flags = append(flags, "phone")
	}
	if u.PhotoVerified {
		flags = append(flags, "photo")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func renderUsers(w io.Writer, snap adminstore.Snapshot) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tSTATUS\tGENDER\tVERIFIED\tMATCHES\tDATES\tJOINED")
	for _, u := range snap.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			u.ID, u.Name, u.Email, u.Status, u.Gender, verified(u),
			u.MatchCount, u.DateCount, humanize.Time(u.CreatedAt))
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\npage %d of %d (%s users, %d per page)\n",
		snap.CurrentPage, snap.TotalPages, humanize.Comma(int64(snap.TotalUsers)), snap.PageSize)
}

func renderUserDetail(w io.Writer, snap adminstore.Snapshot) {
	u := snap.SelectedUser
	if u == nil {
		return
	}
	tw := newTable(w)
	fmt.Fprintf(tw, "id\t%s\n", u.ID)
	fmt.Fprintf(tw, "name\t%s\n", u.Name)
	fmt.Fprintf(tw, "email\t%s\n", u.Email)
	fmt.Fprintf(tw, "status\t%s\n", u.Status)
	fmt.Fprintf(tw, "gender\t%s\n", u.Gender)
	fmt.Fprintf(tw, "born\t%s\n", u.BirthDate)
	fmt.Fprintf(tw, "city\t%s\n", u.City)
	fmt.Fprintf(tw, "verified\t%s\n", verified(u.UserSummary))
	fmt.Fprintf(tw, "interests\t%s\n", strings.Join(u.Interests, ", "))
	fmt.Fprintf(tw, "joined\t%s\n", humanize.Time(u.CreatedAt))
	fmt.Fprintf(tw, "last active\t%s\n", humanize.Time(u.LastActiveAt))
	fmt.Fprintf(tw, "bio\t%s\n", u.Bio)
	_ = tw.Flush()

	if len(snap.UserSuggestions) == 0 {
		fmt.Fprintln(w, "\nno suggestions")
		return
	}
	fmt.Fprintln(w, "\nSuggestions:")
	tw = newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSCORE\tSHARED")
	for _, s := range snap.UserSuggestions {
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%s\n",
			s.Candidate.ID, s.Candidate.Name, s.CompatibilityScore*100, strings.Join(s.SharedInterests, ", "))
	}
	_ = tw.Flush()
}

func renderDates(w io.Writer, snap adminstore.Snapshot) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tWHEN\tDURATION\tTYPE\tSTATUS\tUSERS\tLOCATION\tNOTES")
	for _, d := range snap.GenieDates {
		location := "-"
		if d.Location != nil {
			location = *d.Location
		}
		fmt.Fprintf(tw, "%s\t%s (%s)\t%s\t%s\t%s\t%s / %s\t%s\t%s\n",
			d.ID, d.StartTime().Format(time.DateTime), humanize.Time(d.StartTime()),
			time.Duration(d.DurationMinutes)*time.Minute, d.DateType, d.Status,
			d.User1ID, d.User2ID, location, d.Notes)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%s dates\n", humanize.Comma(int64(snap.TotalGenieDates)))
}
