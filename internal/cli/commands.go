package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/skillfoundry/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display the effective configuration",
		Description: `Print the configuration after merging defaults, the config file and
   SKILLFOUNDRY_* environment variables.

   Examples:
     skillfoundry config
     skillfoundry config --toml
     skillfoundry config --path
     skillfoundry config --init`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "toml",
				Usage: "Print as TOML instead of YAML",
			},
			&cli.BoolFlag{
				Name:  "path",
				Usage: "Print the default config file path only",
			},
			&cli.BoolFlag{
				Name:  "init",
				Usage: "Write the effective configuration to the config file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			cfg := configFrom(ctx)

			path := cmd.Root().String("config")
			if path == "" {
				path = config.FilePath()
			}

			switch {
			case cmd.Bool("path"):
				fmt.Fprintln(w, path)
				return nil
			case cmd.Bool("init"):
				if err := cfg.SaveToPath(path); err != nil {
					return fmt.Errorf("failed to write config: %w", err)
				}
				fmt.Fprintf(w, "Wrote %s\n", path)
				return nil
			}

			data, err := cfg.Marshal(cmd.Bool("toml"))
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			_, err = w.Write(data)
			return err
		},
	}
}
