package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldlock/fieldlock/internal/record"
	"github.com/fieldlock/fieldlock/internal/schema"
)

// FieldInfo is one declared field in the fields listing.
type FieldInfo struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Required bool            `json:"required"`
	Default  json.RawMessage `json:"default,omitempty"`
}

// FieldsResult is the payload of the fields command.
type FieldsResult struct {
	Record string      `json:"record"`
	Hash   string      `json:"hash"`
	Fields []FieldInfo `json:"fields"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fields <schemas-dir> <record-name>",
		Short:         "Show the declared fields of a record",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runFields(opts *RootOptions, schemasDir, recordName string, cmd *cobra.Command) error {
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

	result, err := fieldsResult(spec)
	if err != nil {
		_ = formatter.Error(constructionCode(err), err.Error(), nil)
		return NewExitError(ExitFailure, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s (%s)\n", result.Record, result.Hash)
	for _, f := range result.Fields {
		line := fmt.Sprintf("  %s: %s", f.Name, f.Type)
		if !f.Required {
			line += fmt.Sprintf(" = %s", f.Default)
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

func fieldsResult(spec *schema.RecordSpec) (*FieldsResult, error) {
	def, err := spec.Definition()
	if err != nil {
		return nil, err
	}
	hash, err := record.DefinitionHash(def)
	if err != nil {
		return nil, err
	}

	result := &FieldsResult{Record: def.Name(), Hash: hash}
	for _, f := range def.Fields() {
		info := FieldInfo{Name: f.Name, Type: f.Type.String(), Required: f.Required()}
		if f.Default != nil {
			data, err := record.MarshalCanonical(f.Default)
			if err != nil {
				return nil, err
			}
			info.Default = data
		}
		result.Fields = append(result.Fields, info)
	}
	return result, nil
}
