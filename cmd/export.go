package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/internal/services/autosave"
	"github.com/killallgit/labeler/internal/services/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <labels.json> [out.zip]",
		Short: "Build an export archive from an annotations file",
		Long: `Build the label archive for an annotations document without a server.

The archive holds labels.json plus one CSV per label category. CSV times
are anchored at the video's modification time, so pass --video when the
document was saved without a video path or the video has moved.

Example:
  labeler export labels.json
  labeler export P01_autosave.json P01_labels.zip --video /data/P01.mp4`,
		Args:        cobra.RangeArgs(1, 2),
		Annotations: map[string]string{skipConfig: "true"},
		RunE:        runExport,
	}
	cmd.Flags().String("video", "", "video the annotations belong to (defaults to the path in the document)")
	cmd.Flags().Bool("force", false, "overwrite an existing archive")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	video, _ := cmd.Flags().GetString("video")
	force, _ := cmd.Flags().GetBool("force")

	snap, err := autosave.ReadSnapshotFile(args[0])
	if err != nil {
		return err
	}
	items, _, err := snap.DecodeAll(true)
	if err != nil {
		return fmt.Errorf("invalid annotations file: %w", err)
	}

	if video == "" {
		video = snap.VideoPath
	}
	out := export.ArchiveName(video)
	if len(args) == 2 {
		out = args[1]
	}
	out, err = filepath.Abs(out)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", out)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	in := export.Input{
		VideoPath:   video,
		VideoHash:   snap.VideoHash,
		Annotations: items,
	}
	res, err := export.NewExporter().Export(cmd.Context(), in, export.NewLocalSink(filepath.Dir(out)), out)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d annotation(s) to %s (%d files, %d bytes)\n",
		len(items), res.Location, res.Files, res.Size)
	if res.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d annotation(s) without a usable label\n", res.Skipped)
	}
	return nil
}
