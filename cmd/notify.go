package cmd

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/dosewatch/dosewatch/internal/errors"
	"github.com/dosewatch/dosewatch/internal/model"
	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/output"
	"github.com/dosewatch/dosewatch/internal/validate"
)

// Webhook command flags.
var (
	webhookAddFlagType     string
	webhookAddFlagTemplate string
)

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook [command]",
	Aliases: []string{"wh", "hook"},
	Short:   "Configure notification webhooks",
	Long: `Configure webhooks for Discord, Slack, or custom endpoints. Enabled
webhooks receive dose reminders from 'dosewatch watch'.

Examples:
  dosewatch webhook add alerts https://discord.com/api/webhooks/...
  dosewatch webhook list
  dosewatch webhook test alerts
  dosewatch webhook disable alerts
  dosewatch webhook remove alerts`,
	RunE: runWebhookList,
}

// webhookAddCmd adds a new webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a new webhook",
	Long: `Add a webhook for receiving reminders.

The webhook type is auto-detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Generic: Any other URL`,
	Args: cobra.ExactArgs(2),
	RunE: runWebhookAdd,
}

// webhookListCmd lists all webhooks.
var webhookListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all webhooks",
	RunE:    runWebhookList,
}

// webhookTestCmd tests a webhook.
var webhookTestCmd = &cobra.Command{
	Use:   "test NAME",
	Short: "Send a test notification to a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookTest,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

// webhookEnableCmd enables a webhook.
var webhookEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookEnabled(args[0], true)
	},
}

// webhookDisableCmd disables a webhook.
var webhookDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setWebhookEnabled(args[0], false)
	},
}

// notifyCmd manages the notification permission.
var notifyCmd = &cobra.Command{
	Use:   "notify [command]",
	Short: "Manage notification settings",
	RunE:  runNotifyShow,
}

// notifyEnableCmd grants notification permission.
var notifyEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Allow reminder notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(model.PermissionGranted)
	},
}

// notifyDisableCmd denies notification permission.
var notifyDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Suppress reminder notifications",
	Long: `Suppress outbound notifications. Reminders are still tracked and shown
in the dashboard; only webhook delivery is silenced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPermission(model.PermissionDenied)
	},
}

func init() {
	webhookAddCmd.Flags().StringVarP(&webhookAddFlagType, "type", "t", "",
		"Webhook type: discord, slack, generic (auto-detected from URL if not specified)")
	webhookAddCmd.Flags().StringVar(&webhookAddFlagTemplate, "template", "",
		"Custom payload template for generic webhooks")

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookEnableCmd)
	webhookCmd.AddCommand(webhookDisableCmd)
	rootCmd.AddCommand(webhookCmd)

	notifyCmd.AddCommand(notifyEnableCmd)
	notifyCmd.AddCommand(notifyDisableCmd)
	rootCmd.AddCommand(notifyCmd)
}

// detectWebhookType guesses the webhook type from its URL.
func detectWebhookType(webhookURL string) string {
	switch {
	case strings.Contains(webhookURL, "discord.com/api/webhooks"),
		strings.Contains(webhookURL, "discordapp.com/api/webhooks"):
		return model.WebhookTypeDiscord
	case strings.Contains(webhookURL, "hooks.slack.com"):
		return model.WebhookTypeSlack
	default:
		return model.WebhookTypeGeneric
	}
}

func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	webhookURL := args[1]

	if err := validate.WebhookName(name); err != nil {
		return err
	}
	if err := validate.URL(webhookURL); err != nil {
		return err
	}

	exists, err := ctx.WebhookRepo.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewUserError(
			"webhook "+name+" already exists",
			"Remove it first or pick a different name.",
		)
	}

	webhookType := webhookAddFlagType
	if webhookType == "" {
		webhookType = detectWebhookType(webhookURL)
	}
	if !model.IsValidWebhookType(webhookType) {
		return apperrors.NewUserErrorWithField(
			"type", webhookType,
			"invalid webhook type",
			"Valid types: discord, slack, generic.",
		)
	}

	webhook := model.NewWebhook(name, webhookType, webhookURL)
	webhook.Template = webhookAddFlagTemplate

	if err := ctx.WebhookRepo.Create(webhook); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewWebhookOutput(webhook))
	}

	cli := ctx.CLIFormatter()
	cli.Success("Added " + webhookType + " webhook " + name)
	cli.Muted("Verify it with 'dosewatch webhook test " + name + "'.")
	return nil
}

func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		outputs := make([]*output.WebhookOutput, len(webhooks))
		for i, w := range webhooks {
			outputs[i] = output.NewWebhookOutput(w)
		}
		return ctx.Formatter.JSON(map[string]interface{}{"webhooks": outputs})
	}

	cli := ctx.CLIFormatter()
	if len(webhooks) == 0 {
		cli.Muted("No webhooks configured.")
		cli.Muted("Use 'dosewatch webhook add NAME URL' to add one.")
		return nil
	}

	rows := make([]output.TableRow, len(webhooks))
	for i, w := range webhooks {
		state := "disabled"
		if w.Enabled {
			state = "enabled"
		}
		lastUsed := "-"
		if !w.LastUsed.IsZero() {
			lastUsed = output.FormatTimeShort(w.LastUsed)
		}
		rows[i] = output.TableRow{Columns: []string{w.Name, w.Type, state, w.MaskedURL(), lastUsed}}
	}
	cli.PrintTable([]string{"NAME", "TYPE", "STATE", "URL", "LAST USED"}, rows)
	return nil
}

func runWebhookTest(cmd *cobra.Command, args []string) error {
	name := args[0]

	dispatcher := notify.NewDispatcher(ctx.WebhookRepo)

	testCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	result := dispatcher.TestWebhook(testCtx, name)

	if ctx.IsJSON() {
		out := map[string]interface{}{
			"webhook": result.WebhookName,
			"success": result.Success,
		}
		if result.Error != nil {
			out["error"] = result.Error.Error()
		}
		return ctx.Formatter.JSON(out)
	}

	cli := ctx.CLIFormatter()
	if result.Success {
		cli.Success("Test notification delivered to " + name)
	} else {
		cli.Error("Test failed for " + name + ": " + result.Error.Error())
	}
	return nil
}

func runWebhookRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	exists, err := ctx.WebhookRepo.Exists(name)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrWebhookNotFound
	}

	if err := ctx.WebhookRepo.Delete(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "removed", "webhook": name})
	}

	ctx.CLIFormatter().Success("Removed webhook " + name)
	return nil
}

func setWebhookEnabled(name string, enabled bool) error {
	if err := ctx.WebhookRepo.SetEnabled(name, enabled); err != nil {
		return err
	}

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{"webhook": name, "enabled": enabled})
	}

	ctx.CLIFormatter().Success(verb + " webhook " + name)
	return nil
}

func runNotifyShow(cmd *cobra.Command, args []string) error {
	config, err := ctx.NotifyConfigRepo.Get()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"permission":   string(config.Permission),
			"snooze_delay": config.SnoozeDelay.String(),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Printf("Notifications: %s\n", config.Permission)
	cli.Printf("Snooze delay: %s\n", config.SnoozeDelay)
	return nil
}

func setPermission(p model.Permission) error {
	config, err := ctx.NotifyConfigRepo.Get()
	if err != nil {
		return err
	}
	config.Permission = p
	if err := ctx.NotifyConfigRepo.Set(config); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"permission": string(p)})
	}

	cli := ctx.CLIFormatter()
	if p == model.PermissionGranted {
		cli.Success("Reminder notifications enabled")
	} else {
		cli.Success("Reminder notifications disabled")
		cli.Muted("Reminders will still appear in the dashboard.")
	}
	return nil
}
