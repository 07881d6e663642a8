package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axiome/firstprinciples/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local cache of rendered diagrams and explanations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show how many entries the cache holds",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, ok, err := openFileCache()
				if err != nil || !ok {
					return err
				}
				st, err := fc.Stats()
				if err != nil {
					return err
				}
				printKeyValue("directory", fc.Dir())
				printKeyValue("entries", plural(st.Entries, "entry", "entries"))
				printKeyValue("size", byteSize(st.Bytes))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached entry",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fc, ok, err := openFileCache()
				if err != nil || !ok {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				printSuccess("Removed %s", plural(n, "entry", "entries"))
				printDetail("%s", fc.Dir())
				return nil
			},
		},
	)
	return cmd
}

// openFileCache opens the CLI cache without creating it. ok is false, and
// a note printed, when nothing has been cached yet.
func openFileCache() (fc *cache.FileCache, ok bool, err error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, false, fmt.Errorf("locate cache: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Nothing cached yet")
		return nil, false, nil
	}
	fc, err = cache.NewFileCache(dir)
	return fc, err == nil, err
}

func byteSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
