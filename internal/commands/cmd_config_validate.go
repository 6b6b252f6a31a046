package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/docent/internal/core/config"
	"github.com/colonyops/docent/internal/core/styles"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "docent config validate [options]",
				Description: "Validates the configuration file and checks that the assistant credentials are available.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one failed check.
type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(_ context.Context, c *cli.Command) error {
	issues := validate(cmd.flags.ConfigPath)

	w := c.Root().Writer
	if cmd.format == "json" {
		return outputJSON(w, issues)
	}
	return outputText(w, cmd.flags.ConfigPath, issues)
}

// validate loads the config at path and runs the deep checks, flattening
// any failures into issues.
func validate(path string) []validationIssue {
	cfg, err := config.Load(path)
	if err == nil {
		err = cfg.ValidateDeep(path)
	}
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Field: "config_file", Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func outputJSON(w io.Writer, issues []validationIssue) error {
	out := struct {
		Valid  bool              `json:"valid"`
		Errors []validationIssue `json:"errors,omitempty"`
	}{
		Valid:  len(issues) == 0,
		Errors: issues,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if len(issues) > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func outputText(w io.Writer, path string, issues []validationIssue) error {
	for _, is := range issues {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", styles.ErrorStyle.Render("✗"), is.Field, is.Message)
	}

	if len(issues) == 0 {
		_, _ = fmt.Fprintf(w, "%s Configuration is valid (%s)\n", styles.SuccessStyle.Render("✓"), path)
		return nil
	}

	_, _ = fmt.Fprintf(w, "\n%d error(s) found\n", len(issues))
	return cli.Exit("", 1)
}
