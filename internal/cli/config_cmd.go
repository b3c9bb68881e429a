package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with plugin settings files",
	}

	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <settings.yaml>",
		Short: "Check a settings file before loading it into the simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.Load(args[0])
			if err != nil {
				return err
			}

			issues := config.Validate(&s)
			if len(issues) == 0 {
				fmt.Println("ok")
				return nil
			}
			for _, issue := range issues {
				fmt.Printf("%s\n", issue)
			}
			return fmt.Errorf("%d issue(s) found", len(issues))
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <settings.yaml>",
		Short: "Write a settings file with default values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", args[0])
			}

			if err := config.Save(args[0], config.Defaults()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
