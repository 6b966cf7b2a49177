package cmd

import (
	"context"
	"fmt"

	"resource-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd runs every integrity check.
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage, catalog and expansion pack",
	Long:  `Checks the storage folder structure, that every catalog row has its object, the catalog schema and the expansion pack.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), "")
	},
}

func integritySubcommand(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntegrityChecks(cmd.Context(), name)
		},
	}
}

var (
	structureCmd    = integritySubcommand("structure", "Check and fix folder structure")
	catalogCheckCmd = integritySubcommand("catalog", "Check catalog rows against storage")
	schemaCheckCmd  = integritySubcommand("schema", "Check the catalog table schema")
	archiveCheckCmd = integritySubcommand("archive", "Check every expansion pack entry decompresses")
)

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, catalogCheckCmd, schemaCheckCmd, archiveCheckCmd)
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Fix missing folders")
}

// runIntegrityChecks runs the named check, or all of them when only is empty.
// It fails when any check reports a problem.
func runIntegrityChecks(ctx context.Context, only string) error {
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.Close()
	logg := rt.logg

	opts := []integrity.Option{}
	if rt.db != nil {
		opts = append(opts, integrity.WithDatabase(rt.db), integrity.WithCatalog(rt.catalog))
	}
	if rt.pack != nil {
		opts = append(opts, integrity.WithPack(rt.pack))
	}
	svc := integrity.NewService(rt.store, rt.cfg.Storage.Bucket, logg, opts...)
	run := func(name string) bool { return only == "" || only == name }
	problems := 0

	if run("structure") {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		switch {
		case err != nil:
			logg.Error("Structure check failed", zap.Error(err))
			problems++
		case len(missing) == 0:
			logg.Info("Structure is intact.")
		case only == "structure" && fixFlag:
			logg.Info("Fixing missing folders...", zap.Strings("missing", missing))
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed successfully.")
		default:
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			logg.Info("Run 'integrity structure --fix' to create missing folders.")
			problems++
		}
	}

	if run("catalog") {
		logg.Info("Checking catalog objects...")
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			logg.Error("Catalog check failed", zap.Error(err))
			problems++
		} else {
			logg.Info("Catalog checked",
				zap.Int("total", report.Total),
				zap.Int("found", report.Found),
				zap.Int("missing", len(report.Missing)),
				zap.Ints("unkeyed", report.Unkeyed))
			for _, m := range report.Missing {
				logg.Warn("Missing object", zap.Int("raw_id", m.RawID), zap.String("object_key", m.ObjectKey))
			}
			if len(report.Missing) > 0 || len(report.Unkeyed) > 0 {
				problems++
			}
		}
	}

	if run("schema") {
		logg.Info("Checking catalog schema...")
		report, err := svc.CheckSchema()
		switch {
		case err != nil:
			logg.Error("Schema check failed", zap.Error(err))
			problems++
		case report.Matched:
			logg.Info("Catalog schema matches.", zap.String("table", report.Table))
		default:
			logg.Warn("Catalog schema mismatches found",
				zap.String("table", report.Table),
				zap.Strings("missing_columns", report.MissingColumns),
				zap.Strings("type_mismatches", report.TypeMismatches))
			problems++
		}
	}

	if run("archive") {
		logg.Info("Checking expansion pack...")
		report, err := svc.CheckArchive()
		switch {
		case err != nil:
			logg.Error("Archive check failed", zap.Error(err))
			problems++
		case len(report.Unreadable) > 0:
			logg.Warn("Unreadable entries", zap.String("path", report.Path), zap.Strings("entries", report.Unreadable))
			problems++
		default:
			logg.Info("Expansion pack is readable.", zap.String("path", report.Path), zap.Int("entries", report.Entries))
		}
	}

	if problems > 0 {
		return fmt.Errorf("%d integrity checks reported problems", problems)
	}
	return nil
}
