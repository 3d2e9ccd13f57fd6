package cli

import (
	"github.com/spf13/cobra"

	"github.com/fieldlock/fieldlock/internal/store"
)

// NewPutCommand creates the put command.
func NewPutCommand(rootOpts *RootOptions) *cobra.Command {
	var setArgs []string
	var valuesFile string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "put <schemas-dir> <record-name> [value...]",
		Short: "Construct a record instance and store it",
		Long: `Construct an instance of a declared record and write it to the store.

The record's definition is written alongside it. Writes are idempotent:
putting the same values twice yields the same content address and a single
row.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPut(rootOpts, args[0], args[1], args[2:], setArgs, valuesFile, dbPath, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&setArgs, "set", nil, "bind a field by name (name=value, repeatable)")
	cmd.Flags().StringVar(&valuesFile, "values", "", "YAML file of name: value bindings")
	cmd.Flags().StringVar(&dbPath, "db", "fieldlock.db", "SQLite database path")

	return cmd
}

func runPut(opts *RootOptions, schemasDir, recordName string, positional, setArgs []string, valuesFile, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadSchemas(schemasDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		return reportLoadError(formatter, loadErrors[0])
	}

	spec, err := loadResult.FindSpec(recordName)
	if err != nil {
		return reportLoadError(formatter, err)
	}

	in, err := buildInstance(spec, positional, setArgs, valuesFile)
	if err != nil {
		_ = formatter.Error(constructionCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer st.Close()

	var gen store.TokenGenerator = store.UUIDv7Generator{}
	token := gen.Generate()

	id, err := st.PutRecord(cmd.Context(), in, token)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "writing record", err)
	}
	formatter.VerboseLog("Stored record %s (batch %s)", id, token)

	out, err := recordOutput(in)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	out.ID = id
	out.BatchToken = token

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	printRecord(formatter.Writer, in, out)
	return nil
}
