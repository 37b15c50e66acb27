package main

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cli "github.com/okonomi/serverless-typespec-generator/internal/cli"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "tsp-gen",
		Short: "Generate TypeSpec from serverless.yml",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPrintCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// newViper layers TSPGEN_* environment variables under the command's flags.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TSPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())
	return v
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the configured outputs",
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := newViper(cmd)
		return cli.RunGenerate(cli.RunGenerateParams{
			ConfigPath: v.GetString("config"),
			Check:      v.GetBool("check"),
			Fallback: cli.FallbackParams{
				Spec:             v.GetString("input"),
				Type:             v.GetString("type"),
				OutFile:          v.GetString("out"),
				ArrayMode:        v.GetString("array-mode"),
				IncludeFunctions: v.GetStringSlice("include-functions"),
				ExcludeFunctions: v.GetStringSlice("exclude-functions"),
			},
		})
	}

	cmd.Flags().StringP("config", "c", "", "Path to tspgen.yaml config")
	cmd.Flags().Bool("check", false, "Fail if any output would change instead of writing it")
	// Fallback single-output flags
	cmd.Flags().String("input", "", "serverless.yml file")
	cmd.Flags().String("type", "typespec", "Output type (typespec or openapi)")
	cmd.Flags().String("out", "", "Output file")
	cmd.Flags().String("array-mode", "", "Array body mode (inline or alias)")
	cmd.Flags().StringArray("include-functions", nil, "Regex patterns for functions to include")
	cmd.Flags().StringArray("exclude-functions", nil, "Regex patterns for functions to exclude")

	return cmd
}

func newPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the TypeSpec document to stdout",
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := newViper(cmd)
		return cli.RunPrint(cli.RunPrintParams{
			Input:     v.GetString("input"),
			Title:     v.GetString("title"),
			Namespace: v.GetString("namespace"),
			ArrayMode: v.GetString("array-mode"),
		}, cmd.OutOrStdout())
	}
	cmd.Flags().String("input", "", "serverless.yml file")
	cmd.Flags().String("title", "", "Service title")
	cmd.Flags().String("namespace", "", "Namespace")
	cmd.Flags().String("array-mode", "", "Array body mode (inline or alias)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the API described by serverless.yml",
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		v := newViper(cmd)
		return cli.RunValidate(v.GetString("config"), v.GetString("input"))
	}
	cmd.Flags().StringP("config", "c", "", "Path to tspgen.yaml config")
	cmd.Flags().String("input", "", "serverless.yml file")
	return cmd
}
