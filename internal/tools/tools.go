// Package tools exposes the account operations as model-callable tools.
//
// Every call returns a JSON-ready object with a "success" field. Failures,
// including unknown tools and panics, are reported as
// {"success": false, "error": "..."} and never as Go errors.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"jira-tools/internal/account"
	"jira-tools/internal/logging"
	"jira-tools/internal/telemetry"

	"github.com/pterm/pterm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"
)

const (
	ListAccounts       = "list_accounts"
	GetAccountProjects = "get_account_projects"
	GetAccountSummary  = "get_account_summary"
	LogTimeWithAccount = "log_time_with_account"
)

type handler func(ctx context.Context, args map[string]any) map[string]any

type tool struct {
	decl *genai.FunctionDeclaration
	run  handler
}

// Toolset dispatches tool calls to an account service.
type Toolset struct {
	accounts *account.Service
	log      *pterm.Logger
	calls    metric.Int64Counter
	tools    map[string]tool
	order    []string
}

// New builds the toolset. A nil service is allowed; every call then fails
// with an envelope.
func New(accounts *account.Service, logger *pterm.Logger) *Toolset {
	t := &Toolset{
		accounts: accounts,
		log:      logging.OrDiscard(logger),
		tools:    make(map[string]tool),
	}

	counter, err := telemetry.Meter("jira-tools/tools").Int64Counter("jira_tools.tool.calls",
		metric.WithDescription("Tool calls by name and outcome"))
	if err != nil {
		t.log.Warn("could not create tool call counter", t.log.Args("error", err.Error()))
	}
	t.calls = counter

	t.register(listAccountsDecl, t.listAccounts)
	t.register(getAccountProjectsDecl, t.getAccountProjects)
	t.register(getAccountSummaryDecl, t.getAccountSummary)
	t.register(logTimeWithAccountDecl, t.logTimeWithAccount)
	return t
}

func (t *Toolset) register(decl *genai.FunctionDeclaration, run handler) {
	t.tools[decl.Name] = tool{decl: decl, run: run}
	t.order = append(t.order, decl.Name)
}

// Names lists the tool names in registration order.
func (t *Toolset) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *Toolset) Declarations() []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.tools[name].decl)
	}
	return out
}

// GenaiTool bundles the declarations for a GenerateContentConfig.
func (t *Toolset) GenaiTool() *genai.Tool {
	return &genai.Tool{FunctionDeclarations: t.Declarations()}
}

// Call runs the named tool with model-supplied arguments.
func (t *Toolset) Call(ctx context.Context, name string, args map[string]any) (result map[string]any) {
	ctx, span := telemetry.Tracer("jira-tools/tools").Start(ctx, "tools."+name,
		trace.WithAttributes(attribute.String("tool.name", name)))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			t.log.Error("tool panicked", t.log.Args("tool", name, "panic", fmt.Sprint(r)))
			result = failure(fmt.Sprintf("tool %s failed: %v", name, r))
		}
		ok, _ := result["success"].(bool)
		if !ok {
			msg, _ := result["error"].(string)
			span.SetStatus(codes.Error, msg)
		}
		if t.calls != nil {
			t.calls.Add(ctx, 1, metric.WithAttributes(
				attribute.String("tool", name),
				attribute.Bool("success", ok),
			))
		}
	}()

	tl, ok := t.tools[name]
	if !ok {
		return failure(fmt.Sprintf("unknown tool %q (available: %v)", name, t.sortedNames()))
	}
	if t.accounts == nil {
		return failure("account service not available")
	}
	if args == nil {
		args = map[string]any{}
	}

	t.log.Debug("tool call", t.log.Args("tool", name, "args", args))
	return tl.run(ctx, args)
}

// CallJSON is Call with JSON-encoded arguments and result. ok mirrors the
// result's success field.
func (t *Toolset) CallJSON(ctx context.Context, name, rawArgs string) (out string, ok bool) {
	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return Encode(failure(fmt.Sprintf("invalid arguments: %v", err))), false
		}
	}
	result := t.Call(ctx, name, args)
	ok, _ = result["success"].(bool)
	return Encode(result), ok
}

// Encode renders a result as indented JSON.
func Encode(result map[string]any) string {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		data, _ = json.Marshal(failure(fmt.Sprintf("encode result: %v", err)))
	}
	return string(data)
}

func (t *Toolset) sortedNames() []string {
	names := t.Names()
	sort.Strings(names)
	return names
}

func failure(msg string) map[string]any {
	return map[string]any{"success": false, "error": msg}
}

func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
