package initialize

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/nmsearch/internal/config"
	"github.com/indaco/nmsearch/internal/core"
	"github.com/indaco/nmsearch/internal/printer"
	"github.com/indaco/nmsearch/internal/tui"
	"github.com/urfave/cli/v3"
)

// Template is a preset configuration for a kind of project layout.
type Template struct {
	Name        string
	Description string
	Apply       func(*config.Config)
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "default",
			Description: "Use a lerna/pnpm/npm workspace manifest when present, else scan",
			Apply:       func(*config.Config) {},
		},
		{
			Name:        "monorepo",
			Description: "Only offer manifest packages that have dependencies installed",
			Apply: func(c *config.Config) {
				c.Discovery.Strategy = config.StrategyManifest
				c.Packages.RequireDependencyFolder = true
			},
		},
		{
			Name:        "scan",
			Description: "Always scan the tree for package folders",
			Apply: func(c *config.Config) {
				c.Discovery.Strategy = config.StrategyRecursive
				c.Discovery.Exclude = []string{".git", "dist", "build"}
			},
		},
	}
}

// TemplateNames returns the names of all templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name.
func GetTemplate(name string) (Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a " + config.DefaultConfigFile + " configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Configuration template: " + strings.Join(TemplateNames(), ", "),
				Value:   "default",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := &Initializer{
				FS:          core.NewOSFileSystem(),
				Saver:       config.NewConfigSaver(&commentedMarshaler{}, nil),
				Interactive: tui.IsInteractive(),
				Confirm:     tui.Confirm,
				Out:         os.Stdout,
			}
			return in.Init(ctx, config.DefaultConfigFile, cmd.String("template"), cmd.Bool("force"))
		},
	}
}

// Initializer writes a new configuration file.
type Initializer struct {
	FS          core.FileSystem
	Saver       *config.ConfigSaver
	Interactive bool
	Confirm     func(title, description string) (bool, error)
	Out         io.Writer
}

// Init writes the template configuration to path. An existing file is only
// replaced with force or after confirmation.
func (in *Initializer) Init(ctx context.Context, path, templateName string, force bool) error {
	tmpl, err := GetTemplate(templateName)
	if err != nil {
		return err
	}

	if !force && core.Exists(ctx, in.FS, path) {
		if !in.Interactive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		ok, err := in.Confirm("Overwrite "+path+"?", "The current configuration will be replaced.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(in.Out, printer.Faint("Aborted, "+path+" left unchanged"))
			return nil
		}
	}

	cfg := TemplateConfig(tmpl)
	if err := in.Saver.SaveTo(cfg, path); err != nil {
		return err
	}
	fmt.Fprintln(in.Out, printer.Success("✓ Created "+path)+printer.Faint(" (template "+tmpl.Name+")"))
	return nil
}

// TemplateConfig returns the configuration written for tmpl.
func TemplateConfig(tmpl Template) *config.Config {
	cfg := config.Default()
	cfg.Theme = tui.DefaultTheme
	cfg.State = nil
	tmpl.Apply(cfg)
	return cfg
}

// commentedMarshaler renders YAML with a header describing every setting.
type commentedMarshaler struct{}

func (m *commentedMarshaler) Marshal(v any) ([]byte, error) {
	body, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(configHeader()), body...), nil
}

func configHeader() string {
	themes := slices.Clone(tui.ValidThemes)
	lines := []string{
		"# nmsearch configuration file",
		"#",
		"# useLastFolder: reopen the folder of the last opened file",
		"# path: dependency folder looked up in each package",
		"# theme: " + strings.Join(themes, ", "),
		"# editor: command used to open files (defaults to $VISUAL, then $EDITOR)",
		"# discovery.strategy: manifest, recursive or auto",
		"# state.file: TOML file keeping the last folder (defaults to the user cache directory)",
		"",
	}
	return strings.Join(lines, "\n")
}
