package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petreldb/petrel/schema"
)

// ObjectView is the printable description of one schema object type.
type ObjectView struct {
	Name   string      `json:"name"`
	Fields []FieldView `json:"fields"`
}

// FieldView is the printable description of one field declaration.
type FieldView struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
}

func (v ObjectView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:", v.Name)
	for _, f := range v.Fields {
		marker := ""
		if f.Optional {
			marker = "?"
		}
		fmt.Fprintf(&b, "\n  %-12s %s%s", f.Name, f.Type, marker)
	}
	return b.String()
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <schema-dir> <object>",
		Short:         "Show the field declarations of one schema object type",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], args[1], cmd)
		},
	}
}

func runShow(opts *RootOptions, dir, objectName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := schema.Load(dir)
	if err != nil {
		_ = formatter.Failure("E_LOAD", err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	obj, ok := reg.Lookup(objectName)
	if !ok {
		msg := fmt.Sprintf("unknown object type %q (have: %s)", objectName, strings.Join(sortedObjectNames(reg), ", "))
		_ = formatter.Failure("E_OBJECT", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	view := ObjectView{Name: obj.Name}
	for _, f := range obj.Fields {
		view.Fields = append(view.Fields, FieldView{
			Name:     f.Name,
			Type:     fieldType(f),
			Optional: f.Optional,
		})
	}
	return formatter.Success(view)
}

// fieldType renders a field declaration the way the schema files write it.
func fieldType(f schema.Field) string {
	name := f.Kind.String()
	if f.Kind == schema.KindObject && f.Object != nil {
		name = f.Object.Name
	}
	switch {
	case f.Collection:
		return "list of " + name
	case f.Map:
		return "map of " + name
	default:
		return name
	}
}
