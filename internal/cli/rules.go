package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type RulesOptions struct {
	GlobalOptions

	Output string

	out io.Writer
}

func DefaultRulesOptions() *RulesOptions {
	return &RulesOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        yamlFormat,
	}
}

func NewCmdRules() *cobra.Command {
	o := DefaultRulesOptions()
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective validation rules, fleet limits and equipment defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *RulesOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *RulesOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *RulesOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Output == "" {
		return fmt.Errorf("output format is required")
	}
	return validateOutput(o.Output)
}

func (o *RulesOptions) Run(ctx context.Context, args []string) error {
	return printStructured(o.out, o.Settings(), o.Output)
}
