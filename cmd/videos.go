package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/internal/database"
	"github.com/killallgit/labeler/internal/services/videos"
)

func newVideosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "List videos in the registry",
		Long: `Work with the registry of videos that have been opened for labeling.

Available subcommands:
  list  - Show recently opened videos`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show recently opened videos",
		Args:  cobra.NoArgs,
		RunE:  runVideosList,
	}
	list.Flags().Int("limit", 20, "maximum number of videos to show")

	cmd.AddCommand(list)
	return cmd
}

func runVideosList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	db, err := database.InitializeWithMigrations()
	if err != nil {
		return err
	}
	defer db.Close()

	svc := videos.NewService(videos.NewRepository(db.DB))
	list, err := svc.ListVideos(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No videos have been opened yet")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tANNOTATIONS\tLAST OPENED\tLAST EXPORT")
	for _, v := range list {
		exported := "-"
		if v.LastExportedAt != nil {
			exported = v.LastExportedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", v.Path, v.AnnotationCount, v.LastOpenedAt.Local().Format(time.DateTime), exported)
	}
	return w.Flush()
}
