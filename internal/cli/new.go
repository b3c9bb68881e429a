package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xplm-go/xplm/config"
)

func newNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <dir>",
		Short: "Scaffold a new plugin in the given directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			name := filepath.Base(dir)

			if _, err := os.Stat(filepath.Join(dir, "main.go")); err == nil {
				return fmt.Errorf("%s already contains a main.go", dir)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			mainPath := filepath.Join(dir, "main.go")
			if err := os.WriteFile(mainPath, []byte(mainTemplate(name)), 0o644); err != nil {
				return err
			}
			settingsPath := filepath.Join(dir, "settings.yaml")
			if err := config.Save(settingsPath, config.Defaults()); err != nil {
				return err
			}

			fmt.Printf("created %s\n", mainPath)
			fmt.Printf("created %s\n", settingsPath)
			fmt.Println()
			fmt.Println("next steps:")
			fmt.Printf("  cd %s\n", dir)
			fmt.Printf("  go mod init example.com/%s\n", name)
			fmt.Println("  go get github.com/xplm-go/xplm")
			fmt.Printf("  go build -tags xplm -buildmode=c-shared -o lin_x64/%s.xpl .\n", name)
			return nil
		},
	}
}

func mainTemplate(name string) string {
	sig := "com.example." + strings.ToLower(name)
	return fmt.Sprintf(`package main

import (
	"github.com/xplm-go/xplm/logging"
	"github.com/xplm-go/xplm/plugin"
)

type %[1]sPlugin struct {
	log *logging.Logger
}

func (p *%[1]sPlugin) Start() (plugin.Info, error) {
	p.log = logging.Default().Sub(%[2]q)
	return plugin.Info{
		Name:        %[2]q,
		Signature:   %[3]q,
		Description: "Describe what %[2]s does.",
	}, nil
}

func (p *%[1]sPlugin) Enable() error {
	p.log.Info().Msg("enabled")
	return nil
}

func (p *%[1]sPlugin) Disable() {
	p.log.Info().Msg("disabled")
}

func (p *%[1]sPlugin) Stop() {}

func init() {
	plugin.Register(&%[1]sPlugin{})
}

// main never runs; the simulator loads the plugin as a shared library.
func main() {}
`, identifier(name), name, sig)
}

// identifier turns a directory name into a usable Go identifier prefix.
func identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9' && b.Len() > 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "my"
	}
	return strings.ToLower(b.String())
}
