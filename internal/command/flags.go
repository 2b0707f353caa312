// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/linediff/internal/config"
	"github.com/tfctl/linediff/internal/output"
)

// compareFlags returns the flags of the root compare command.
func compareFlags(ns string) []cli.Flag {
	flags := []cli.Flag{
		withConfig(ns, &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "report format: json, yaml or text",
			Value:   string(output.FormatJSON),
			Sources: cli.NewValueSourceChain(cli.EnvVar("LINEDIFF_FORMAT")),
			Validator: func(value string) error {
				return FlagValidators(value, FormatValidator)
			},
		}),
		&cli.BoolFlag{
			Name:        "schema",
			Usage:       "list the report attributes and exit",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "linediff version info",
			HideDefault: true,
		},
	}
	flags = append(flags, NewFieldsFlag(ns))
	return append(flags, NewAWSFlags()...)
}

// NewFieldsFlag constructs the --fields flag. Root flags are inherited by
// subcommands, so serve picks it up under its own config namespace.
func NewFieldsFlag(ns string) *cli.StringFlag {
	return withConfig(ns, &cli.StringFlag{
		Name:    "fields",
		Usage:   "diff table field names: original or generic",
		Value:   string(output.FieldsOriginal),
		Sources: cli.NewValueSourceChain(cli.EnvVar("LINEDIFF_FIELDS")),
		Validator: func(value string) error {
			return FlagValidators(value, FieldsValidator)
		},
	})
}

// NewAWSFlags constructs --profile and --region. They only matter for s3://
// locations and fall back to aws.profile and aws.region in the config file.
func NewAWSFlags() []cli.Flag {
	return []cli.Flag{
		withConfig("aws", &cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile for s3:// locations",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		}),
		withConfig("aws", &cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region for s3:// locations",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		}),
	}
}

// serveFlags returns the flags of the serve subcommand.
func serveFlags() []cli.Flag {
	return []cli.Flag{
		withConfig("serve", &cli.StringFlag{
			Name:    "addr",
			Usage:   "listen address",
			Value:   ":8080",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LINEDIFF_ADDR")),
		}),
		withConfig("serve", &cli.StringFlag{
			Name:  "max-size",
			Usage: "largest accepted upload per file, e.g. 512KB or 2MiB",
			Value: "1MiB",
			Validator: func(value string) error {
				return FlagValidators(value, SizeValidator)
			},
		}),
	}
}

// viewFlags returns the flags of the view subcommand.
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "filter",
			Usage: "comma-separated list of filters to apply to rows, e.g. tag=delete,doc2@TODO",
		},
	}
}

// withConfig chains the config file after the flag's env sources when a
// config file was loaded.
func withConfig(ns string, flag *cli.StringFlag) *cli.StringFlag {
	if config.Config.Source == "" {
		return flag
	}
	return NameSpacedValueChainFlagFromConfigFile(ns, config.Config.Source, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Dashes in the flag name become
// underscores in the config key.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	key := strings.ReplaceAll(flag.Name, "-", "_")

	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
