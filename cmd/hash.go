package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/internal/services/autosave"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <video>",
		Short: "Print the size hash of a video file",
		Long: `Print the fingerprint stored in autosaves and exports for a video.

The hash is computed from the file size only, so two files with the same
size share a hash.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return fmt.Errorf("failed to stat video: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), autosave.HashSize(info.Size()))
			return nil
		},
	}
}
