package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jira-tools/internal/account"
	"jira-tools/internal/gemini"
	"jira-tools/internal/jira"
	"jira-tools/internal/ui"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"
)

const maxTurns = 50

// IssueLister supplies the issues shown to the assistant as context.
type IssueLister interface {
	InProgress(ctx context.Context) ([]jira.Issue, error)
}

type Runner struct {
	issues   IssueLister
	accounts *account.Service
	gemini   *gemini.Assistant
}

func NewRunner(issues IssueLister, accounts *account.Service, assistant *gemini.Assistant) *Runner {
	return &Runner{
		issues:   issues,
		accounts: accounts,
		gemini:   assistant,
	}
}

// loadContext fetches accounts and in-progress issues concurrently.
// Accounts are always returned. The error comes from the issue fetch.
func (r *Runner) loadContext(ctx context.Context) ([]account.Account, []jira.Issue, error) {
	var (
		accounts []account.Account
		issues   []jira.Issue
		g        errgroup.Group
	)
	g.Go(func() error {
		accounts = r.accounts.Accounts(ctx, "")
		return nil
	})
	if r.issues != nil {
		g.Go(func() error {
			var err error
			issues, err = r.issues.InProgress(ctx)
			if err != nil {
				return fmt.Errorf("fetch issues: %w", err)
			}
			return nil
		})
	}
	err := g.Wait()
	return accounts, issues, err
}

func (r *Runner) Run(ctx context.Context) error {
	ui.PrintWelcome()

	spinner, _ := pterm.DefaultSpinner.Start("Loading accounts and issues...")
	accounts, issues, err := r.loadContext(ctx)
	spinner.Stop()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	ui.PrintAccounts(accounts)
	if err != nil {
		// The assistant still works without issue context.
		ui.PrintError("Could not fetch issues: " + err.Error())
	} else if len(issues) > 0 {
		ui.PrintIssuesTable(issues)
	}

	r.gemini.OnToolCall = func(tc gemini.ToolCall) {
		ui.PrintToolCall(tc.Name, tc.Result)
	}

	ui.PrintCommands()
	response, err := r.gemini.StartConversation(ctx, gemini.PromptContext{
		Accounts: accounts,
		Issues:   issues,
		Today:    time.Now(),
	})
	if err != nil {
		ui.PrintError("Gemini error: " + err.Error())
		return err
	}
	ui.PrintTypewriter(response)

	reader := ui.NewLineReader()
	for range maxTurns {
		input, ok := reader.Read("You: ")
		if !ok || ui.IsExitCommand(input) {
			ui.PrintFarewell()
			return nil
		}
		if input == "" {
			continue
		}

		if cmd, isCmd := ui.ParseCommand(input); isCmd {
			r.handleCommand(ctx, cmd)
			continue
		}

		thinking, _ := pterm.DefaultSpinner.
			WithRemoveWhenDone(true).
			Start("Thinking...")
		response, err = r.gemini.SendMessage(ctx, input)
		thinking.Stop()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			ui.PrintError("Gemini error: " + err.Error())
			continue
		}
		ui.PrintTypewriter(response)
	}

	ui.PrintStatus("That's a long conversation. Start a new one to keep going.")
	return nil
}

func (r *Runner) handleCommand(ctx context.Context, cmd ui.Command) {
	switch cmd.Name {
	case "/help":
		ui.PrintCommands()
	case "/accounts":
		ui.PrintAccounts(r.accounts.Accounts(ctx, cmd.Args))
	case "/projects":
		if cmd.Args == "" {
			ui.PrintError("usage: /projects <account-id>")
			return
		}
		projects, err := r.accounts.AccountProjects(ctx, cmd.Args)
		if errors.Is(err, account.ErrAccountNotFound) {
			ui.PrintError(err.Error())
			return
		}
		ui.PrintProjects(cmd.Args, projects)
	case "/clear":
		ui.ClearScreen()
	default:
		ui.PrintError("unknown command " + cmd.Name + ", try /help")
	}
}
