package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/fieldlock/fieldlock/internal/store"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "get <record-id>",
		Short:         "Fetch a stored record by content address",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], dbPath, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "fieldlock.db", "SQLite database path")

	return cmd
}

func runGet(opts *RootOptions, id, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer st.Close()

	rec, err := st.GetRecord(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "reading record", err)
	}

	out, err := recordOutput(rec.Instance)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}
	out.ID = rec.ID
	out.DefinitionHash = rec.DefinitionHash
	out.BatchToken = rec.BatchToken
	out.CreatedAt = rec.CreatedAt

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	printRecord(formatter.Writer, rec.Instance, out)
	return nil
}
