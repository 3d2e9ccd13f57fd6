package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldlock/fieldlock/internal/store"
)

// ListResult is the payload of the list command.
type ListResult struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string
	var recordName string
	var whereArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored records",
		Long: `List stored records in deterministic order (by content address).

--record filters by definition type name; --where field=value filters on a
scalar field.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, dbPath, recordName, whereArg, cmd)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "fieldlock.db", "SQLite database path")
	cmd.Flags().StringVar(&recordName, "record", "", "filter by record type name")
	cmd.Flags().StringVar(&whereArg, "where", "", "filter by scalar field value (field=value)")

	return cmd
}

func runList(opts *RootOptions, dbPath, recordName, whereArg string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	filter := store.ListFilter{Name: recordName}
	if whereArg != "" {
		field, raw, ok := strings.Cut(whereArg, "=")
		if !ok || field == "" {
			msg := fmt.Sprintf("expected field=value, got %q", whereArg)
			_ = formatter.Error(ErrCodeGeneric, msg, nil)
			return NewExitError(ExitCommandError, msg)
		}
		filter.Field = field
		filter.Value = ParseScalar(raw)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening store", err)
	}
	defer st.Close()

	records, err := st.ListRecords(cmd.Context(), filter)
	if err != nil {
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "listing records", err)
	}
	formatter.VerboseLog("Matched %d record(s)", len(records))

	result := ListResult{Records: []RecordOutput{}, Count: len(records)}
	for i := range records {
		rec := &records[i]
		out, err := recordOutput(rec.Instance)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		out.ID = rec.ID
		out.DefinitionHash = rec.DefinitionHash
		out.BatchToken = rec.BatchToken
		out.CreatedAt = rec.CreatedAt
		result.Records = append(result.Records, *out)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(records) == 0 {
		fmt.Fprintln(formatter.Writer, "no records")
		return nil
	}
	for i := range records {
		fmt.Fprintf(formatter.Writer, "%s  %s\n", records[i].ID, records[i].Instance.String())
	}
	return nil
}
