package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	filesPackage string
	fileFull     bool
)

var filesCmd = &cobra.Command{
	Use:   "files <component>",
	Short: "List a component's source files",
	Long: `List every file under the component's directory as virtual paths
(<package>/<path inside the package>), with counts per file type.

Component names match directory names case-insensitively.

Example:
  srcnav files Button
  srcnav files DatePicker --package @acme/ui`,
	Args: cobra.ExactArgs(1),
	RunE: runFiles,
}

var fileCmd = &cobra.Command{
	Use:   "file <virtual-path>",
	Short: "Print a source file, collapsing function bodies in long scripts",
	Long: `Print a file by virtual path. Script files at or above the configured
line threshold have their function bodies replaced with a placeholder;
pass --full for the complete source.

Example:
  srcnav file @my-design/react/Button/index.tsx
  srcnav file @my-design/react/Table/Table.tsx --full`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

var functionCmd = &cobra.Command{
	Use:   "function <virtual-path> <name>",
	Short: "Print one function's complete source",
	Long: `Print the first function, method or arrow function with the given
name (case-sensitive). When nothing matches, the names that do exist
are listed.

Example:
  srcnav function @my-design/react/Table/Table.tsx render`,
	Args: cobra.ExactArgs(2),
	RunE: runFunction,
}

func init() {
	rootCmd.AddCommand(filesCmd, fileCmd, functionCmd)
	filesCmd.Flags().StringVarP(&filesPackage, "package", "p", "", "package name (default from config)")
	fileCmd.Flags().BoolVar(&fileFull, "full", false, "print the complete source without collapsing bodies")
}

func runFiles(cmd *cobra.Command, args []string) error {
	_, _, nav, err := setup()
	if err != nil {
		return err
	}

	list, err := nav.ListFiles(cmd.Context(), args[0], filesPackage)
	if err != nil {
		return renderError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), list.Text())
	return nil
}

func runFile(cmd *cobra.Command, args []string) error {
	_, _, nav, err := setup()
	if err != nil {
		return err
	}

	view, err := nav.GetFile(cmd.Context(), args[0], fileFull)
	if err != nil {
		return renderError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), view.Text())
	return nil
}

func runFunction(cmd *cobra.Command, args []string) error {
	_, _, nav, err := setup()
	if err != nil {
		return err
	}

	fn, err := nav.GetFunction(cmd.Context(), args[0], args[1])
	if err != nil {
		return renderError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), fn.Text())
	return nil
}
