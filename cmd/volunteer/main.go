package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"volunteer-backend/internal/client"
	"volunteer-backend/internal/localstore"
	"volunteer-backend/internal/logger"
)

var Version = "dev"

// app holds what subcommands share. client and store are opened lazily so
// that directory commands never touch the local store and vice versa.
type app struct {
	baseURL   string
	storePath string
	timeout   time.Duration
	out       io.Writer

	client *client.Client
	store  *localstore.Store
}

func main() {
	logger.Initialize(os.Getenv("LOG_LEVEL"), "text")

	a := &app{out: os.Stdout}
	defer a.close()
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "volunteer",
		Short:         "Browse volunteer shifts, register, and manage your onboarding profile",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("VOLUNTEER_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8081"
	}
	rootCmd.PersistentFlags().StringVar(&a.baseURL, "api", apiURL, "Base URL of the volunteer API")
	rootCmd.PersistentFlags().StringVar(&a.storePath, "store", defaultStorePath(), "Path of the local onboarding store")
	rootCmd.PersistentFlags().DurationVar(&a.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	rootCmd.AddCommand(orgsCmd(a))
	rootCmd.AddCommand(orgCmd(a))
	rootCmd.AddCommand(shiftsCmd(a))
	rootCmd.AddCommand(shiftCmd(a))
	rootCmd.AddCommand(registerCmd(a))
	rootCmd.AddCommand(profileCmd(a))
	rootCmd.AddCommand(notificationsCmd(a))
	rootCmd.AddCommand(achievementsCmd(a))
	rootCmd.AddCommand(onboardingCmd(a))

	return rootCmd
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "volunteer.db"
	}
	return filepath.Join(dir, "volunteer", "local.db")
}

func (a *app) api() (*client.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	c, err := client.New(client.Options{
		BaseURL:    a.baseURL,
		HTTPClient: &http.Client{Timeout: a.timeout},
	})
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

func (a *app) localStore(ctx context.Context) (*localstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	if dir := filepath.Dir(a.storePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	s, err := localstore.Open(ctx, a.storePath)
	if err != nil {
		return nil, err
	}
	a.store = s
	return s, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(arg string) (int32, error) {
	v, err := strconv.ParseInt(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return int32(v), nil
}
