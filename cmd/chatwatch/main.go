package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nexusmarket/internal/adapter/apiclient"
	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/infrastructure/poller"
	"nexusmarket/pkg/logger"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "chatwatch",
		Short:         "Watch your marketplace conversations from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.chatwatch.yaml)")
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().String("token", "", "bearer token")
	rootCmd.PersistentFlags().String("email", "", "account email")
	rootCmd.PersistentFlags().String("password", "", "account password")
	for _, name := range []string{"server", "token", "email", "password"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(newLoginCmd(), newWatchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".chatwatch")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("chatwatch")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Warn("chatwatch: reading config: %v", err)
		}
		return
	}
	logger.Debug("chatwatch: using config file %s", filepath.Clean(viper.ConfigFileUsed()))
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, password := viper.GetString("email"), viper.GetString("password")
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}

			client := apiclient.NewClient(viper.GetString("server"), "")
			result, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Signed in as %s, token expires %s\n", result.User.Name, result.ExpiresAt.Format(time.RFC1123))
			fmt.Fprintln(cmd.OutOrStdout(), result.Token)
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	var (
		focus    string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll conversations and print new messages as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client, user, err := connect(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching conversations for %s every %s (Ctrl+C to stop)\n", user.Name, interval)

			p := poller.New(user.ID, client, poller.NotifierFunc(func(ctx context.Context, n poller.Notification) error {
				fmt.Fprintf(out, "[%s] %s: %s\n", time.UnixMilli(n.Timestamp).Format(time.Kitchen), n.Title(), n.Text)
				return nil
			}),
				poller.WithInterval(interval),
				poller.OnConversations(func(list []*entity.Conversation) {
					fmt.Fprintf(out, "%d conversation(s), %d unread\n", len(list), totalUnread(list, user.ID))
				}),
				poller.OnActive(func(c *entity.Conversation) {
					printConversation(out, c, user.ID)
				}),
			)
			if focus != "" {
				p.Focus(focus)
			}

			if err := p.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&focus, "focus", "", "conversation to keep open and mark as read")
	cmd.Flags().DurationVar(&interval, "interval", poller.DefaultInterval, "poll interval")
	return cmd
}

// connect reuses a configured token, signing in with email and password when
// there is none.
func connect(ctx context.Context) (*apiclient.Client, *entity.User, error) {
	client := apiclient.NewClient(viper.GetString("server"), viper.GetString("token"))

	if viper.GetString("token") == "" {
		email, password := viper.GetString("email"), viper.GetString("password")
		if email == "" || password == "" {
			return nil, nil, fmt.Errorf("set --token or --email and --password")
		}
		if _, err := client.Login(ctx, email, password); err != nil {
			return nil, nil, err
		}
	}

	user, err := client.Me(ctx)
	if err != nil {
		return nil, nil, err
	}
	return client, user, nil
}

func totalUnread(list []*entity.Conversation, userID string) int {
	total := 0
	for _, c := range list {
		total += c.UnreadCount(userID)
	}
	return total
}

func printConversation(out io.Writer, c *entity.Conversation, userID string) {
	other := c.OtherParticipant(userID)
	fmt.Fprintf(out, "--- %s", other.Name)
	if c.ProductName != "" {
		fmt.Fprintf(out, " about %s", c.ProductName)
	}
	fmt.Fprintln(out, " ---")

	for _, m := range c.Messages {
		name := other.Name
		switch {
		case m.IsSystem():
			name = "*"
		case m.SenderID == userID:
			name = "you"
		}
		fmt.Fprintf(out, "%s %s: %s\n", m.CreatedAt().Format(time.Kitchen), name, m.Text)
	}
}
