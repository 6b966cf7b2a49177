package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"resource-manager/core/archive"
	"resource-manager/core/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// archiveCmd is the parent command for expansion pack operations.
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Inspect the expansion pack",
}

// archiveLsCmd lists expansion pack entries.
var archiveLsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List expansion pack entries",
	Long:  `Lists the entries of the expansion pack at path, or at ARCHIVE_PATH when omitted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) == 1 {
			cfg.Archive.Path = args[0]
		}

		pack, err := archive.Open(cfg.Archive)
		if err != nil {
			return err
		}
		defer pack.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ENTRY\tSIZE")
		var total uint64
		for _, name := range pack.Names() {
			data, err := pack.ReadFile(name)
			if err != nil {
				fmt.Fprintf(w, "%s\t%s\n", name, err)
				continue
			}
			total += uint64(len(data))
			fmt.Fprintf(w, "%s\t%s\n", name, humanize.Bytes(uint64(len(data))))
		}
		_ = w.Flush()
		fmt.Printf("\n%d entries, %s uncompressed\n", pack.Len(), humanize.Bytes(total))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveLsCmd)
}
