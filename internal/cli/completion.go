package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/quicktiles/pkg/grid"
	"github.com/matzehuels/quicktiles/pkg/pipeline"
	"github.com/matzehuels/quicktiles/pkg/settings"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Completions cover subcommands, flags, setting keys and their values
("quicktiles settings set <TAB>"), and render formats and styles.

  bash:       source <(quicktiles completion bash)
  zsh:        quicktiles completion zsh > "${fpath[1]}/_quicktiles"
  fish:       quicktiles completion fish | source
  powershell: quicktiles completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeSettingKey offers the writable setting keys, with their
// descriptions, for the first argument.
func completeSettingKey(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, k := range settings.KnownKeys(settings.DefaultTheme()) {
		if settings.IsKnownKey(k.Key) && strings.HasPrefix(k.Key, toComplete) {
			out = append(out, k.Key+"\t"+k.Description)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeSettingValue completes `settings set KEY VALUE`: the key first,
// then the values that key accepts.
func completeSettingValue(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completeSettingKey(cmd, args, toComplete)
	case 1:
		return settingValues(args[0]), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

// settingValues lists suggested values for key.
func settingValues(key string) []string {
	switch key {
	case settings.KeyDuplicateLandscape:
		return []string{"1\tdouble columns in landscape", "0\tkeep columns in landscape"}
	case settings.KeyTilesPerRow:
		out := make([]string, 0, 6)
		for n := 1; n <= 6; n++ {
			out = append(out, strconv.Itoa(n)+"\tlabel text size "+strconv.Itoa(grid.TileTextSizeFor(n)))
		}
		return out
	}
	return nil
}

// completeFormats completes the comma-separated --format list, offering
// only formats not already given.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	parts := strings.Split(toComplete, ",")
	done := parts[:len(parts)-1]
	prefix := ""
	if len(done) > 0 {
		prefix = strings.Join(done, ",") + ","
	}
	seen := make(map[string]bool, len(done))
	for _, f := range done {
		seen[strings.TrimSpace(f)] = true
	}

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON, pipeline.FormatText} {
		if !seen[f] {
			out = append(out, prefix+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeStyles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{pipeline.StyleSimple, pipeline.StyleHanddrawn}, cobra.ShellCompDirectiveNoFileComp
}

func completeCacheBackends(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{"file", "redis", "mongo", "none"}, cobra.ShellCompDirectiveNoFileComp
}
