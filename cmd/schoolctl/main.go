package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/client"
	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configFile string
	baseURL    string
	client     *client.Client
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "schoolctl",
		Short:         "Add and browse schools in the directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "optional config file")
	root.PersistentFlags().StringVar(&a.baseURL, "api", "", "API base URL (overrides CLIENT_BASE_URL)")

	root.AddCommand(newAddCmd(a), newListCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.Client.BaseURL = a.baseURL
	}

	// Logs go to a file only; stdout is for the user.
	a.log = zap.NewNop()
	if cfg.Log.File != "" {
		if a.log, err = logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File}); err != nil {
			return err
		}
	}

	a.client = client.New(cfg.Client.BaseURL, cfg.Client.Timeout)
	return nil
}

func newAddCmd(a *app) *cobra.Command {
	form := &client.Form{}
	var imageFile string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Upload an image and add a school that references it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if imageFile != "" {
				data, err := os.ReadFile(imageFile)
				if err != nil {
					return fmt.Errorf("read image: %w", err)
				}
				form.Image = data
				form.ImageName = imageFile
			}

			res, err := client.NewWorkflow(a.client, a.log).Submit(cmd.Context(), form)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), client.Message(err))
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d, image %s)\n", res.Message, res.ID, res.ImagePath)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "school name")
	f.StringVar(&form.Address, "address", "", "street address")
	f.StringVar(&form.City, "city", "", "city")
	f.StringVar(&form.State, "state", "", "state")
	f.StringVar(&form.Contact, "contact", "", "10-digit contact number")
	f.StringVar(&form.EmailID, "email", "", "contact email")
	f.StringVar(&imageFile, "image", "", "path to the school image")

	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List schools",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := client.NewPresenter(a.client, a.client.BaseURL(), a.log).Load(cmd.Context())
			out := cmd.OutOrStdout()

			switch view.Status {
			case client.StatusFailed:
				fmt.Fprintln(cmd.ErrOrStderr(), view.Message())
				return view.Err
			case client.StatusEmpty:
				fmt.Fprintln(out, view.Message())
				return nil
			}

			for _, item := range view.Items {
				fmt.Fprintf(out, "%s\t%s\t%s, %s\t%s\n", item.ID, item.Name, item.Address, item.City, item.ImageURL)
			}
			return nil
		},
	}
}
