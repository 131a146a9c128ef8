package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tokenledger/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var (
		adminKey    string
		rootDir     = cfg.General.RootDir
		projectID   = cfg.OpenAI.ProjectID
		sessionCLI  = cfg.Moonshot.SessionCommand
		inputShare  = strconv.FormatFloat(cfg.Moonshot.InputShare, 'f', -1, 64)
		outputShare = strconv.FormatFloat(cfg.Moonshot.OutputShare, 'f', -1, 64)
		channel     = cfg.Notify.Channel
		target      = cfg.Notify.Target
		addr        = cfg.Server.Addr
	)

	keyHint := "Leave empty to keep the current key"
	if existing, err := config.LoadAdminKey(cfg.CredentialPath()); err == nil {
		keyHint = "Current: " + config.MaskKey(existing) + ". Leave empty to keep it"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Workspace root").
				Description("Holds data/, config/ and credentials/").
				Value(&rootDir),
			huh.NewInput().
				Title("OpenAI admin key").
				Description(keyHint).
				EchoMode(huh.EchoModePassword).
				Value(&adminKey),
			huh.NewInput().
				Title("OpenAI project ID").
				Description("Optional filter for usage and costs").
				Value(&projectID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Session CLI").
				Description("Lists Moonshot sessions with `sessions list --json`").
				Value(&sessionCLI),
			huh.NewInput().
				Title("Input token share").
				Validate(validateShare).
				Value(&inputShare),
			huh.NewInput().
				Title("Output token share").
				Validate(validateShare).
				Value(&outputShare),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Notification channel").
				Options(channelOptions(channel)...).
				Value(&channel),
			huh.NewInput().
				Title("Notification target").
				Description("Chat or user id for the messaging CLI").
				Value(&target),
			huh.NewInput().
				Title("Dashboard listen address").
				Value(&addr),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup aborted, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.RootDir = strings.TrimSpace(rootDir)
	cfg.OpenAI.ProjectID = strings.TrimSpace(projectID)
	cfg.Moonshot.SessionCommand = strings.TrimSpace(sessionCLI)
	cfg.Moonshot.InputShare, _ = strconv.ParseFloat(inputShare, 64)
	cfg.Moonshot.OutputShare, _ = strconv.ParseFloat(outputShare, 64)
	cfg.Notify.Channel = channel
	cfg.Notify.Target = strings.TrimSpace(target)
	cfg.Server.Addr = strings.TrimSpace(addr)

	path := configPath()
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println()
	fmt.Printf("  Saved to %s\n", path)

	if key := strings.TrimSpace(adminKey); key != "" {
		if err := config.SaveAdminKey(cfg.CredentialPath(), key); err != nil {
			return err
		}
		fmt.Printf("  Admin key written to %s\n", cfg.CredentialPath())
	}

	fmt.Println("  Run `tokenledger setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

func validateShare(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number such as 0.9")
	}
	if v < 0 || v > 1 {
		return errors.New("share must be between 0 and 1")
	}
	return nil
}

func channelOptions(current string) []huh.Option[string] {
	names := []string{"telegram", "discord", "slack", "desktop"}
	found := false
	for _, n := range names {
		if n == current {
			found = true
		}
	}
	if !found && current != "" {
		names = append([]string{current}, names...)
	}
	return huh.NewOptions(names...)
}
