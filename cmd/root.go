package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chyp8 path/ROM",
	Short: "Chip-8 emulator using Go",
	Long: "A Chip-8 emulator written from scratch that mimics the functionalities of a Chip-8, an interpretted language originally written for the COSMIC-VIP/ Telmac 8 bit systems.\n\n" +
		"Keys 1234/qwer/asdf/zxcv form the hex keypad, Escape quits.",
	Args:          cobra.ExactArgs(1),
	RunE:          Start,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chyp8.yaml)")
	flags.IntP(keyClock, "c", 10, "instructions executed per tick")
	flags.IntP(keyRefresh, "r", 60, "sets the refresh rate of the display and timers in Hz, at most 1000")
	flags.IntP(keyScale, "s", 10, "window pixels per CHIP-8 pixel")
	flags.BoolP(keyTerminal, "t", false, "render in the terminal instead of a window")
	flags.Bool(keyMute, false, "disable sound")
	flags.Float64(keyTone, 440, "beep frequency in Hz")
	flags.String(keyBeepFile, "", "mp3 file played instead of the generated beep")
	flags.BoolP(keyWatch, "w", false, "reload the ROM when the file changes")
	flags.Int64(keySeed, 0, "seed for the random number instruction, 0 picks one")
	flags.String(keyForeground, "white", "colour of lit pixels")
	flags.String(keyBackground, "#000032", "colour of unlit pixels")
	flags.BoolP(keyDebug, "d", false, "enable debug logging")
	flags.BoolP(keyQuiet, "q", false, "only log errors")
	flags.String(keyLogFile, "", "write the log to this file, required for logging in terminal mode")
	cobra.CheckErr(viper.BindPFlags(flags))

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(disasmCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".chyp8" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".chyp8")
	}

	viper.SetEnvPrefix("chyp8")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
