package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/killallgit/labeler/internal/services/autosave"
)

func newAutosaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autosave",
		Short: "Inspect autosave snapshots",
		Long: `Inspect the autosave snapshots kept for each video.

Available subcommands:
  check   - Report whether a snapshot exists and matches the video
  show    - Print the snapshot document
  delete  - Remove the snapshot`,
	}

	check := &cobra.Command{
		Use:   "check <video>",
		Short: "Report whether a video has an autosave",
		Args:  cobra.ExactArgs(1),
		RunE:  runAutosaveCheck,
	}
	show := &cobra.Command{
		Use:   "show <video>",
		Short: "Print the autosave of a video",
		Args:  cobra.ExactArgs(1),
		RunE:  runAutosaveShow,
	}
	del := &cobra.Command{
		Use:   "delete <video>",
		Short: "Delete the autosave of a video",
		Args:  cobra.ExactArgs(1),
		RunE:  runAutosaveDelete,
	}

	cmd.AddCommand(check, show, del)
	return cmd
}

// autosaveManager opens the configured snapshot directory and resolves the
// video argument
func autosaveManager(arg string) (*autosave.Manager, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	manager, err := autosave.NewManager(cfg.Autosave.ResolvedDir())
	if err != nil {
		return nil, "", err
	}
	path, err := filepath.Abs(arg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve %s: %w", arg, err)
	}
	return manager, path, nil
}

func runAutosaveCheck(cmd *cobra.Command, args []string) error {
	manager, path, err := autosaveManager(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	hash := autosave.CalculateVideoHash(path)
	snap, matches := manager.Check(path, hash)
	if snap == nil {
		fmt.Fprintf(out, "No autosave for %s\n", path)
		return nil
	}

	fmt.Fprintf(out, "Autosave:     %s\n", manager.PathFor(path))
	fmt.Fprintf(out, "Annotations:  %d\n", len(snap.Annotations))
	fmt.Fprintf(out, "Video hash:   %d\n", snap.VideoHash)
	if !matches {
		fmt.Fprintf(out, "Warning: the video has changed since the autosave (hash %d)\n", hash)
	}
	return nil
}

func runAutosaveShow(cmd *cobra.Command, args []string) error {
	manager, path, err := autosaveManager(args[0])
	if err != nil {
		return err
	}

	snap, _ := manager.Check(path, autosave.CalculateVideoHash(path))
	if snap == nil {
		return fmt.Errorf("no autosave for %s", path)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runAutosaveDelete(cmd *cobra.Command, args []string) error {
	manager, path, err := autosaveManager(args[0])
	if err != nil {
		return err
	}
	if err := manager.Delete(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted autosave for %s\n", path)
	return nil
}
