// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/config"
	"github.com/tfctl/tunnelcfg/internal/log"
)

var yesFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:    "yes",
	Aliases: []string{"y"},
	Usage:   "answer yes to confirmations",
	Sources: cli.NewValueSourceChain(
		cli.EnvVar("TUNNELCFG_YES"),
	),
	HideDefault: true,
}

// NewGlobalFlags returns the document and rendering flags shared by every
// command. params[0] is the namespace used for preferences file lookups.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	flags = []cli.Flag{
		NewFileFlag(params...),
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   preferredBool("color"),
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text output columns",
			Value: preferredInt("padding", 2),
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   preferredBool("titles"),
		},
	}

	return
}

// preferredBool returns the preferences file default for a boolean flag.
// Malformed values fall back to false.
func preferredBool(key string) bool {
	b, err := config.GetBool(key, false)
	if err != nil {
		log.Debugf("ignoring preference %s: %v", key, err)
		return false
	}
	return b
}

// preferredInt returns the preferences file default for an integer flag.
func preferredInt(key string, fallback int) int {
	n, err := config.GetInt(key, fallback)
	if err != nil {
		log.Debugf("ignoring preference %s: %v", key, err)
		return fallback
	}
	return n
}

// NewFileFlag constructs the flag naming the document to work on, optionally
// namespaced to a command in the preferences file.
func NewFileFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"F"},
		Usage:   "settings document to work on",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("TUNNELCFG_FILE"),
		),
	}

	if len(params) == 1 {
		if path := config.Path(); path != "" {
			flag = NameSpacedValueChainFlagFromConfigFile(params[0], path, flag)
		}
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
