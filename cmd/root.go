package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	cpuProfile bool
	profStop   interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "ipldg",
	Short: "Localized reduced-basis reduction for domain-decomposed IPDG systems",
	Long: `
ipldg reduces block-structured full-order models arising from
interior-penalty DG domain decompositions. Per-subdomain reduced bases
grow through localized patch corrections, driven by a two-level a
posteriori error estimator.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cpuProfile {
			profStop = profile.Start(profile.CPUProfile)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profStop != nil {
			profStop.Stop()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ipldg.yaml)")
	rootCmd.PersistentFlags().BoolVar(&cpuProfile, "profile", false, "write a CPU profile for this run")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".ipldg")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
