package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petreldb/petrel/schema"
)

// ValidationResult holds the outcome of validating a schema directory.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Objects []string `json:"objects"`
}

func (r ValidationResult) String() string {
	return fmt.Sprintf("schema OK: %d object type(s): %s", len(r.Objects), strings.Join(r.Objects, ", "))
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <schema-dir>",
		Short: "Validate a directory of CUE schema files",
		Long: `Validate CUE object schema definitions.

Loads every .cue file in the directory, resolves object references
(including cycles), and reports the first definition error with its
file position.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := schema.Load(dir)
	if err != nil {
		var parseErr *schema.ParseError
		if errors.As(err, &parseErr) {
			// A definition error: the directory loaded but the schema is bad.
			_ = formatter.Failure("E_SCHEMA", parseErr.Error(), schemaErrorDetails(parseErr))
			return NewExitError(ExitFailure, parseErr.Error())
		}
		_ = formatter.Failure("E_LOAD", err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	names := sortedObjectNames(reg)
	formatter.VerboseLog("Loaded %d object type(s) from %s", len(names), dir)
	return formatter.Success(ValidationResult{Valid: true, Objects: names})
}

func schemaErrorDetails(e *schema.ParseError) map[string]any {
	details := map[string]any{"object": e.Object}
	if e.Field != "" {
		details["field"] = e.Field
	}
	if e.Pos.IsValid() {
		details["file"] = e.Pos.Filename()
		details["line"] = e.Pos.Line()
	}
	return details
}

func sortedObjectNames(reg *schema.Registry) []string {
	names := make([]string, 0, len(reg.Objects))
	for name := range reg.Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
