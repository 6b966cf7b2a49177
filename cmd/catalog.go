package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"resource-manager/core/catalog"
	"resource-manager/core/config"
	"resource-manager/core/database"
	"resource-manager/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	catalogKind string
	catalogName string
	catalogFile string
)

// catalogCmd is the parent command for asset catalog operations.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the asset catalog",
	Long:  `The asset catalog maps raw resource ids to the storage objects holding their bytes.`,
}

func openCatalog() (*catalog.Catalog, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection required: %w", err)
	}
	cat := catalog.New(db)
	if err := cat.Migrate(); err != nil {
		return nil, nil, err
	}
	return cat, cfg, nil
}

// publishFile uploads the local file at path as the object key.
func publishFile(ctx context.Context, cfg storage.Config, key, path string) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}

	info, err := storage.Publish(ctx, client, cfg, key, f, st.Size())
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s (%s) to %s/%s\n", path, humanize.Bytes(uint64(info.Size)), cfg.Bucket, key)
	return nil
}

// catalogLsCmd lists catalog rows.
var catalogLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List catalog assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := openCatalog()
		if err != nil {
			return err
		}
		assets, err := cat.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RAW ID\tKIND\tOBJECT\tNAME")
		for _, a := range assets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.RawID, a.Kind, a.ObjectKey, a.Name)
		}
		return w.Flush()
	},
}

// catalogAddCmd adds or replaces a catalog row.
var catalogAddCmd = &cobra.Command{
	Use:   "add <raw-id> <object-key>",
	Short: "Add or replace a catalog asset",
	Long:  `Registers <object-key> under <raw-id>. With --file the local file is uploaded to <object-key> first.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawID, err := strconv.Atoi(args[0])
		if err != nil || rawID < 0 {
			return fmt.Errorf("invalid raw id %q", args[0])
		}
		cat, cfg, err := openCatalog()
		if err != nil {
			return err
		}
		if catalogFile != "" {
			if err := publishFile(cmd.Context(), cfg.Storage, args[1], catalogFile); err != nil {
				return err
			}
		}
		return cat.Put(cmd.Context(), catalog.Asset{
			RawID:     rawID,
			ObjectKey: args[1],
			Kind:      catalogKind,
			Name:      catalogName,
		})
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLsCmd, catalogAddCmd)
	catalogAddCmd.Flags().StringVar(&catalogKind, "kind", "texture", "Resource kind of the asset")
	catalogAddCmd.Flags().StringVar(&catalogName, "name", "", "Human readable name")
	catalogAddCmd.Flags().StringVar(&catalogFile, "file", "", "Local file to upload as the object")
}
