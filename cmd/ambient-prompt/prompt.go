package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/ambient-prompt/internal/config"
	"github.com/joestump/ambient-prompt/internal/promptclient"
	"github.com/joestump/ambient-prompt/internal/session"
	"github.com/joestump/ambient-prompt/internal/store"
)

// openSession wires the configured store and API client into a Session.
func openSession(cfg *config.Config, timeout time.Duration) (*session.Session, func(), error) {
	backend, closeBackend, err := store.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if timeout <= 0 {
		timeout = cfg.Client.Timeout
	}
	client := promptclient.New(cfg.Client.BaseURL, promptclient.WithTimeout(timeout))
	sess := session.New(client, store.NewPromptStore(backend))

	cleanup := func() {
		sess.Close()
		_ = closeBackend()
	}
	return sess, cleanup, nil
}

func newGenerateCmd() *cobra.Command {
	var timeout time.Duration
	var quiet bool

	cmd := &cobra.Command{
		Use:   "generate <seed concept>...",
		Short: "Generate a prompt from a seed concept and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cfg, timeout)
			if err != nil {
				return err
			}
			defer cleanup()

			seed := strings.Join(args, " ")
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			if !quiet {
				sess.Watch(func(st session.State) {
					if st.Status == session.Loading {
						fmt.Fprintln(cmd.ErrOrStderr(), "Generating...")
					}
				})
			}

			if !sess.Submit(ctx, seed) {
				return fmt.Errorf("seed concept must not be empty")
			}
			// An interrupt cancels the request itself, which then settles in Error.
			st, err := sess.Wait(context.Background())
			if err != nil {
				return err
			}
			return printState(out, st, seed)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (defaults to AMBIENT_CLIENT_TIMEOUT)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the prompt")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cfg, 0)
			if err != nil {
				return err
			}
			defer cleanup()

			st := sess.State()
			if st.Status != session.Ready {
				fmt.Fprintln(cmd.OutOrStdout(), "No prompt saved. Try: ambient-prompt generate forest ambience")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), st.Prompt)
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			sess, cleanup, err := openSession(cfg, 0)
			if err != nil {
				return err
			}
			defer cleanup()

			if sess.Clear() {
				fmt.Fprintln(cmd.OutOrStdout(), "Prompt cleared.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear.")
			}
			return nil
		},
	}
}

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List example seed concepts from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			client := promptclient.New(cfg.Client.BaseURL, promptclient.WithTimeout(cfg.Client.Timeout))
			examples, err := client.Examples(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", promptclient.MessageOf(err))
			}
			for _, e := range examples {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

// printState renders a settled session state; an Error state becomes a
// command error carrying a retry hint.
func printState(w io.Writer, st session.State, seed string) error {
	switch st.Status {
	case session.Ready:
		fmt.Fprintln(w, st.Prompt)
		return nil
	case session.Error:
		return fmt.Errorf("%s (%s)\nretry with: ambient-prompt generate %q", st.Message, st.Kind, seed)
	default:
		return fmt.Errorf("prompt request did not complete (state %s)", st.Status)
	}
}

