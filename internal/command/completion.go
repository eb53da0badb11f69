// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/tunnelcfg/internal/meta"
)

const bashCompletionScript = `# bash completion for tunnelcfg
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_tunnelcfg()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "backups diff edit get set show tunnels validate completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local render="--color -c --filter -f --output -o --padding --sort -s --titles -t"

    case "$cmd" in
        show|backups)
            local opts="--file -F $render"
            ;;
        tunnels)
            if [[ ${COMP_CWORD} -eq 2 ]]; then
                COMPREPLY=( $(compgen -W "list add update remove" -- "$cur") )
                return 0
            fi
            local opts="--file -F $render --remote-host --remote-port --local-host --local-port --yes -y"
            ;;
        diff)
            local opts="--file -F --backup -b --color -c --pick -p"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="--file -F"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Otherwise complete the document path
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _tunnelcfg tunnelcfg
`

const zshCompletionScript = `#compdef tunnelcfg

_tunnelcfg() {
  local -a cmds
  cmds=(
    'backups:list backups of the document'
    'diff:show changes since a backup'
    'edit:edit the document interactively'
    'get:print one setting'
    'set:write one setting'
    'show:show the settings section'
    'tunnels:list and edit the tunnel list'
    'validate:check the document without changing it'
    'completion:generate shell completion script'
  )

  local -a render
  render=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[spaces between columns]:padding'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'tunnelcfg commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    show|backups)
      _arguments -C \
        $render \
        '(-F --file)'{-F,--file}'[settings document]:file:_files' \
        '::document:_files'
      ;;
    tunnels)
      _arguments -C \
        $render \
        '(-F --file)'{-F,--file}'[settings document]:file:_files' \
        '--remote-host[new remote host]:host' \
        '--remote-port[new remote port]:port' \
        '--local-host[new local host]:host' \
        '--local-port[new local port]:port' \
        '(-y --yes)'{-y,--yes}'[answer yes to confirmations]' \
        '1: :(list add update remove)' \
        '*:document:_files'
      ;;
    diff)
      _arguments -C \
        '(-F --file)'{-F,--file}'[settings document]:file:_files' \
        '(-b --backup)'{-b,--backup}'[backup to compare with]:backup' \
        '(-c --color)'{-c,--color}'[enable colored diff]' \
        '(-p --pick)'{-p,--pick}'[choose the backup interactively]' \
        '::document:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C \
        '(-F --file)'{-F,--file}'[settings document]:file:_files' \
        '*:document:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _tunnelcfg tunnelcfg
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	w := stdout(cmd)
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(w, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(w, bashCompletionScript)
		default:
			fmt.Fprintln(stderr(cmd), "usage: tunnelcfg completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "tunnelcfg completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
