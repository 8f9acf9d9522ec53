package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/genielabs/genie-admin/config"
	"github.com/genielabs/genie-admin/internal"
	"github.com/genielabs/genie-admin/pkg/fixtures"
)

var (
	log *logrus.Logger

	cfgFile     string
	showVersion bool
	metricsFile string
)

var cmd = &cobra.Command{
	Use:   "genie",
	Short: "genie is the command line admin console for the Genie dating platform",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if showVersion {
			fmt.Println(config.VersionString)
			os.Exit(0)
		}
	},
	Run: func(cmd *cobra.Command, args []string) { _ = cmd.Help() },
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Fixture utilities",
}

var createFixturesCmd = &cobra.Command{
	Use:     "create",
	Short:   "Generate a demo data set as YAML",
	Example: "genie fixtures create --users 200 --out ./test_data/demo.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		userCount, _ := cmd.Flags().GetInt("users")
		seed, _ := cmd.Flags().GetInt64("seed")
		out, _ := cmd.Flags().GetString("out")

		ds := fixtures.NewBuilder(seed, nowFunc()).DemoDataset(userCount, cfg.Demo.AdminEmail, cfg.Demo.AdminPassword)
		if err := fixtures.WriteYAML(out, ds); err != nil {
			return err
		}
		fmt.Printf("Wrote %d users, %d admins and %d dates to %s\n", len(ds.Users), len(ds.Admins), len(ds.Dates), out)
		return nil
	},
}

var dumpJSONSchemaCmd = &cobra.Command{
	Use:     "json-schema",
	Short:   "Generates JSON Schema for genie's configuration file",
	Example: "genie json-schema > genie_config_schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := config.JSONSchema()
		if err != nil {
			return err
		}
		fmt.Println(string(schema))
		return nil
	},
}

func init() {
	fixturesCmd.AddCommand(createFixturesCmd)
	cmd.AddCommand(fixturesCmd)
	cmd.AddCommand(dumpJSONSchemaCmd)
	cmd.AddCommand(demoCmd)
	cmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	cmd.AddCommand(usersCmd)
	cmd.AddCommand(datesCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().
		StringVar(&metricsFile, "metrics-file", "", "write admin API client metrics to this file on exit")

	createFixturesCmd.Flags().Int("users", 120, "Number of users to generate")
	createFixturesCmd.Flags().Int64("seed", 42, "Random seed")
	createFixturesCmd.Flags().String("out", "./test_data/demo.yaml", "Path of the YAML file to write")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
