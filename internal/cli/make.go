package cli

import (
	"github.com/spf13/cobra"
)

// NewMakeCommand creates the make command.
func NewMakeCommand(rootOpts *RootOptions) *cobra.Command {
	var setArgs []string
	var valuesFile string

	cmd := &cobra.Command{
		Use:   "make <schemas-dir> <record-name> [value...]",
		Short: "Construct a record instance",
		Long: `Construct an instance of a declared record.

Positional values bind fields in declaration order; --set name=value and
--values bind by name. Fields left unbound take their declared default.
Construction is all-or-nothing: any missing, unknown, or ill-typed value
fails without producing an instance.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMake(rootOpts, args[0], args[1], args[2:], setArgs, valuesFile, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&setArgs, "set", nil, "bind a field by name (name=value, repeatable)")
	cmd.Flags().StringVar(&valuesFile, "values", "", "YAML file of name: value bindings")

	return cmd
}

func runMake(opts *RootOptions, schemasDir, recordName string, positional, setArgs []string, valuesFile string, cmd *cobra.Command) error {
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

	out, err := recordOutput(in)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	printRecord(formatter.Writer, in, out)
	return nil
}
