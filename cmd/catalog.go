package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/killallgit/labeler/internal/services/autosave"
	"github.com/killallgit/labeler/internal/services/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the label catalog",
		Long: `Inspect the label catalog used by the server.

Available subcommands:
  show      - Print the active catalog as YAML
  validate  - Check an annotations file against the catalog`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the active catalog",
		Args:  cobra.NoArgs,
		RunE:  runCatalogShow,
	}
	validate := &cobra.Command{
		Use:   "validate <labels.json>",
		Short: "Check annotation labels against the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runCatalogValidate,
	}

	cmd.AddCommand(show, validate)
	return cmd
}

func activeCatalog() (*catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Load(cfg.Catalog.Path)
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	cat, err := activeCatalog()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cat); err != nil {
		return err
	}
	return enc.Close()
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cat, err := activeCatalog()
	if err != nil {
		return err
	}

	snap, err := autosave.ReadSnapshotFile(args[0])
	if err != nil {
		return err
	}
	items, skipped, _ := snap.DecodeAll(false)

	out := cmd.OutOrStdout()
	problems := 0
	for _, a := range items {
		if a.Label == nil {
			continue
		}
		if err := cat.ValidateLabel(*a.Label); err != nil {
			problems++
			fmt.Fprintf(out, "%s [%.3f-%.3f]: %v\n", a.ID, a.StartTime, a.EndTime, err)
			continue
		}
		if inc := cat.Check(*a.Label); inc != nil {
			problems++
			fmt.Fprintf(out, "%s [%.3f-%.3f]: incompatible with PA type %q\n", a.ID, a.StartTime, a.EndTime, inc.PAType)
		}
	}
	if skipped > 0 {
		fmt.Fprintf(out, "Skipped %d malformed record(s)\n", skipped)
	}

	if problems > 0 {
		return fmt.Errorf("%d of %d annotation(s) failed validation", problems, len(items))
	}
	fmt.Fprintf(out, "All %d annotation(s) are valid\n", len(items))
	return nil
}
