package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldlock/fieldlock/internal/record"
)

// CompiledRecord is one record declaration in compiled form.
type CompiledRecord struct {
	Name string          `json:"name"`
	Hash string          `json:"hash"`
	Spec json.RawMessage `json:"spec"` // canonical JSON of the declaration
}

// CompileResult is the payload of a successful compile run.
type CompileResult struct {
	Records   []CompiledRecord `json:"records"`
	FileCount int              `json:"file_count"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "compile <schemas-dir>",
		Short: "Compile record schemas to canonical JSON",
		Long: `Compile CUE record declarations into their canonical JSON form.

Each declaration is emitted with its content address. The output is
byte-stable: compiling the same schemas always produces the same bytes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(rootOpts, args[0], outputPath, cmd)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write compiled output to a file instead of stdout")

	return cmd
}

func runCompile(opts *RootOptions, schemasDir, outputPath string, cmd *cobra.Command) error {
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

	formatter.VerboseLog("Compiling %d record(s) from %d file(s)", len(loadResult.Specs), loadResult.FileCount)

	result := CompileResult{FileCount: loadResult.FileCount}
	for i := range loadResult.Specs {
		spec := &loadResult.Specs[i]

		canonical, err := spec.CanonicalJSON()
		if err != nil {
			_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}

		def, err := spec.Definition()
		if err != nil {
			_ = formatter.Error(constructionCode(err), err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}
		hash, err := record.DefinitionHash(def)
		if err != nil {
			_ = formatter.Error(ErrCodeBuildFailed, err.Error(), nil)
			return NewExitError(ExitFailure, err.Error())
		}

		result.Records = append(result.Records, CompiledRecord{
			Name: spec.Name,
			Hash: hash,
			Spec: canonical,
		})
	}

	if outputPath != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return WrapExitError(ExitCommandError, "encoding output", err)
		}
		if err := os.WriteFile(outputPath, append(data, '\n'), 0o644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		formatter.VerboseLog("Wrote %s", outputPath)
		if formatter.Format == "json" {
			return formatter.Success(map[string]any{"output": outputPath, "records": len(result.Records)})
		}
		fmt.Fprintf(formatter.Writer, "✓ Compiled %d record(s) to %s\n", len(result.Records), outputPath)
		return nil
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	for _, rec := range result.Records {
		fmt.Fprintf(formatter.Writer, "%s %s\n", rec.Hash, rec.Spec)
	}
	return nil
}

// reportLoadError prints a load error and returns the matching ExitError.
func reportLoadError(formatter *OutputFormatter, err error) error {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		code := ExitCommandError
		if loadErr.Code == ErrCodeBuildFailed || loadErr.Code == ErrCodeGeneric {
			code = ExitFailure
		}
		return NewExitError(code, loadErr.Message)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return NewExitError(ExitFailure, err.Error())
}
