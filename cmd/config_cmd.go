package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/cli"
	"github.com/theirongolddev/tokenledger/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := configPath()
	fmt.Println()
	fmt.Println(cli.RenderKV("Config file", path))
	if config.Exists(path) {
		fmt.Println(cli.RenderKV("Status", "loaded"))
	} else {
		fmt.Println(cli.RenderKV("Status", "using defaults (no config file)"))
	}
	fmt.Println()

	fmt.Println(cli.RenderSection("[General]"))
	fmt.Println(cli.RenderKV("Root", cfg.General.RootDir))
	fmt.Println(cli.RenderKV("Store", cfg.DataPath()))
	fmt.Println(cli.RenderKV("Log level", cfg.General.LogLevel))
	fmt.Println()

	fmt.Println(cli.RenderSection("[OpenAI]"))
	fmt.Println(cli.RenderKV("Base URL", cfg.OpenAI.BaseURL))
	fmt.Println(cli.RenderKV("Credential", cfg.CredentialPath()))
	if key, err := config.LoadAdminKey(cfg.CredentialPath()); err == nil {
		fmt.Println(cli.RenderKV("Admin key", config.MaskKey(key)))
	} else {
		fmt.Println(cli.RenderWarning("    Admin key: " + err.Error()))
	}
	if cfg.OpenAI.ProjectID != "" {
		fmt.Println(cli.RenderKV("Project", cfg.OpenAI.ProjectID))
	}
	fmt.Println()

	fmt.Println(cli.RenderSection("[Moonshot]"))
	fmt.Println(cli.RenderKV("Session CLI", cfg.Moonshot.SessionCommand))
	fmt.Println(cli.RenderKV("Session limit", strconv.Itoa(cfg.Moonshot.SessionLimit)))
	fmt.Println(cli.RenderKV("Token split", fmt.Sprintf("%.2f in / %.2f out", cfg.Moonshot.InputShare, cfg.Moonshot.OutputShare)))
	pricing, err := config.LoadPricing(cfg.PricingPath())
	switch {
	case err != nil:
		fmt.Println(cli.RenderWarning("    Pricing: " + err.Error()))
	case len(pricing) == 0:
		fmt.Println(cli.RenderKV("Pricing", cfg.PricingPath()+" (no models)"))
	default:
		fmt.Println(cli.RenderKV("Pricing", fmt.Sprintf("%s (%d models)", cfg.PricingPath(), len(pricing))))
	}
	fmt.Println()

	fmt.Println(cli.RenderSection("[Notify]"))
	fmt.Println(cli.RenderKV("Command", cfg.Notify.Command))
	fmt.Println(cli.RenderKV("Channel", cfg.Notify.Channel))
	if cfg.Notify.Target != "" {
		fmt.Println(cli.RenderKV("Target", cfg.Notify.Target))
	} else {
		fmt.Println(cli.RenderKV("Target", "not configured"))
	}
	fmt.Println()

	fmt.Println(cli.RenderSection("[Server]"))
	fmt.Println(cli.RenderKV("Address", cfg.Server.Addr))
	if cfg.Server.HTMLPath != "" {
		fmt.Println(cli.RenderKV("Page", cfg.Server.HTMLPath))
	} else {
		fmt.Println(cli.RenderKV("Page", "built-in"))
	}
	fmt.Println()

	fmt.Println("  Run `tokenledger setup` to reconfigure.")
	return nil
}
