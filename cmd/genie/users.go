package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/genielabs/genie-admin/pkg/models"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse platform users",
}

var listUsersCmd = &cobra.Command{
	Use:   "list",
	Short: "List users page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		sortBy, _ := cmd.Flags().GetString("sort-by")
		sortOrder, _ := cmd.Flags().GetString("sort-order")
		status, _ := cmd.Flags().GetString("status")
		gender, _ := cmd.Flags().GetString("gender")

		return withSession(true, func(ctx context.Context, s *session) error {
			s.store.FetchUsers(ctx, &models.ListUsersParams{
				Page:          page,
				PageSize:      pageSize,
				SortBy:        sortBy,
				SortOrder:     sortOrder,
				AccountStatus: models.AccountStatus(status),
				Gender:        gender,
			})
			snap := s.store.Snapshot()
			if err := stateError(snap); err != nil {
				return err
			}
			renderUsers(os.Stdout, snap)
			return nil
		})(cmd, args)
	},
}

var searchUsersCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by name or email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		query := args[0]

		return withSession(true, func(ctx context.Context, s *session) error {
			s.store.SearchUsersPage(ctx, query, page)
			snap := s.store.Snapshot()
			if err := stateError(snap); err != nil {
				return err
			}
			renderUsers(os.Stdout, snap)
			return nil
		})(cmd, args)
	},
}

var showUserCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show a user with their date suggestions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := args[0]

		return withSession(true, func(ctx context.Context, s *session) error {
			s.store.OpenUserDetail(ctx, userID)
			snap := s.store.Snapshot()
			if snap.SelectedUser == nil {
				return stateError(snap)
			}
			renderUserDetail(os.Stdout, snap)
			if snap.Error != "" {
				log.Warnf("suggestions unavailable: %s", snap.Error)
			}
			return nil
		})(cmd, args)
	},
}

func init() {
	usersCmd.AddCommand(listUsersCmd, searchUsersCmd, showUserCmd)

	listUsersCmd.Flags().Int("page", 1, "page number")
	listUsersCmd.Flags().Int("page-size", 0, "users per page (default admin.page_size)")
	listUsersCmd.Flags().String("sort-by", "created_at", "created_at, name or email")
	listUsersCmd.Flags().String("sort-order", "desc", "asc or desc")
	listUsersCmd.Flags().String("status", "", "filter by account status (active, pending, suspended)")
	listUsersCmd.Flags().String("gender", "", "filter by gender")

	searchUsersCmd.Flags().Int("page", 1, "page number")
}
