package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	"github.com/ggonzalez94/quoter-cli/internal/cache"
	"github.com/ggonzalez94/quoter-cli/internal/config"
	"github.com/ggonzalez94/quoter-cli/internal/engine"
	clierr "github.com/ggonzalez94/quoter-cli/internal/errors"
	"github.com/ggonzalez94/quoter-cli/internal/id"
	"github.com/ggonzalez94/quoter-cli/internal/model"
	"github.com/ggonzalez94/quoter-cli/internal/out"
	"github.com/ggonzalez94/quoter-cli/internal/plan"
	"github.com/ggonzalez94/quoter-cli/internal/policy"
	"github.com/ggonzalez94/quoter-cli/internal/providers/balancer"
	"github.com/ggonzalez94/quoter-cli/internal/providers/univ3"
	"github.com/ggonzalez94/quoter-cli/internal/providers/vault4626"
	"github.com/ggonzalez94/quoter-cli/internal/registry"
	"github.com/ggonzalez94/quoter-cli/internal/schema"
	"github.com/ggonzalez94/quoter-cli/internal/version"
)

type Runner struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

func NewRunner() *Runner {
	return NewRunnerWithWriters(os.Stdout, os.Stderr)
}

func NewRunnerWithWriters(stdout, stderr io.Writer) *Runner {
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		now:    time.Now,
	}
}

type runtimeState struct {
	runner        *Runner
	flags         config.GlobalFlags
	settings      config.Settings
	cache         *cache.Store
	root          *cobra.Command
	lastCommand   string
	lastWarnings  []string
	lastProviders []model.ProviderStatus

	// dial is swapped in tests for an httptest-backed caller.
	dial func(ctx context.Context, rawURL string) (ethereum.ContractCaller, error)
}

func (r *Runner) Run(args []string) int {
	return r.run(args, dialRPC)
}

func (r *Runner) run(args []string, dial func(ctx context.Context, rawURL string) (ethereum.ContractCaller, error)) int {
	state := &runtimeState{runner: r, dial: dial}
	root := state.newRootCommand()
	state.root = root
	state.resetCommandDiagnostics()
	root.SetArgs(args)
	root.SetOut(r.stdout)
	root.SetErr(r.stderr)
	root.SilenceUsage = true
	root.SilenceErrors = true

	err := root.Execute()
	err = normalizeRunError(err)
	if err == nil {
		if state.cache != nil {
			_ = state.cache.Close()
		}
		return 0
	}

	state.renderError("", err, state.lastWarnings, state.lastProviders)
	if state.cache != nil {
		_ = state.cache.Close()
	}
	return clierr.ExitCode(err)
}

func dialRPC(ctx context.Context, rawURL string) (ethereum.ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *runtimeState) newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.CLIName,
		Short: "Read-only quote chaining CLI for on-chain pricing providers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" {
				return nil
			}
			settings, err := config.Load(s.flags)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "load configuration", err)
			}
			s.settings = settings

			path := trimRootPath(cmd.CommandPath())
			s.lastCommand = path

			if settings.CacheEnabled && shouldOpenCache(path) && s.cache == nil {
				cacheStore, err := cache.Open(settings.CachePath, settings.CacheLockPath)
				if err != nil {
					return clierr.Wrap(clierr.CodeInternal, "open cache", err)
				}
				s.cache = cacheStore
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return clierr.Wrap(clierr.CodeUsage, "parse flags", err)
	})

	cmd.PersistentFlags().BoolVar(&s.flags.JSON, "json", false, "Output JSON (default)")
	cmd.PersistentFlags().BoolVar(&s.flags.Plain, "plain", false, "Output plain text")
	cmd.PersistentFlags().StringVar(&s.flags.Select, "select", "", "Select fields from data (comma-separated)")
	cmd.PersistentFlags().BoolVar(&s.flags.ResultsOnly, "results-only", false, "Output only data payload")
	cmd.PersistentFlags().StringVar(&s.flags.EnableCommands, "enable-commands", "", "Allowlist engine opcodes by name or hex (comma-separated)")
	cmd.PersistentFlags().StringVar(&s.flags.Chain, "chain", "", "Chain id/name/CAIP-2")
	cmd.PersistentFlags().StringVar(&s.flags.RPCURL, "rpc-url", "", "EVM JSON-RPC endpoint override")
	cmd.PersistentFlags().StringVar(&s.flags.Timeout, "timeout", "", "Provider request timeout")
	cmd.PersistentFlags().IntVar(&s.flags.Retries, "retries", -1, "Retries per quote request")
	cmd.PersistentFlags().StringVar(&s.flags.MaxStale, "max-stale", "", "Maximum stale fallback window after TTL expiry")
	cmd.PersistentFlags().BoolVar(&s.flags.NoStale, "no-stale", false, "Reject stale cache entries")
	cmd.PersistentFlags().BoolVar(&s.flags.NoCache, "no-cache", false, "Disable cache reads and writes")
	cmd.PersistentFlags().StringVar(&s.flags.ConfigPath, "config", "", "Path to config file")

	cmd.AddCommand(s.newSchemaCommand())
	cmd.AddCommand(s.newProvidersCommand())
	cmd.AddCommand(s.newCommandsCommand())
	cmd.AddCommand(s.newExecCommand())
	cmd.AddCommand(s.newQuoteCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			if long {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.Long())
				return
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.CLIVersion)
		},
	}
	cmd.Flags().BoolVar(&long, "long", false, "Print extended build metadata")
	return cmd
}

func (s *runtimeState) newSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema [command path]",
		Short: "Print machine-readable command schema",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = strings.Join(args, " ")
			}
			data, err := schema.Build(s.root, path)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "build schema", err)
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), data, nil, cacheMetaBypass(), nil)
		},
	}
	return cmd
}

func (s *runtimeState) newProvidersCommand() *cobra.Command {
	root := &cobra.Command{Use: "providers", Short: "Provider commands"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List pricing providers and their capabilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := []model.ProviderInfo{
				univ3.New(nil, common.Address{}).Info(),
				vault4626.New(nil).Info(),
				balancer.New(nil, common.Address{}).Info(),
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), infos, nil, cacheMetaBypass(), nil)
		},
	}
	root.AddCommand(list)
	return root
}

func (s *runtimeState) newCommandsCommand() *cobra.Command {
	root := &cobra.Command{Use: "commands", Short: "Engine instruction set"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List implemented opcodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]model.CommandInfo, 0)
			for _, c := range engine.Commands() {
				infos = append(infos, model.CommandInfo{
					Opcode: fmt.Sprintf("0x%02x", byte(c)),
					Name:   c.Name(),
					Family: c.Family(),
				})
			}
			return s.emitSuccess(trimRootPath(cmd.CommandPath()), infos, nil, cacheMetaBypass(), nil)
		},
	}
	root.AddCommand(list)
	return root
}

func (s *runtimeState) newExecCommand() *cobra.Command {
	var commandsArg string
	var inputArgs []string
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute a raw command/payload sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			commands, err := parseHexBytes(commandsArg)
			if err != nil {
				return clierr.Wrap(clierr.CodeUsage, "parse --commands", err)
			}
			inputs := make([][]byte, 0, len(inputArgs))
			for i, raw := range inputArgs {
				input, err := parseHexBytes(raw)
				if err != nil {
					return clierr.Wrap(clierr.CodeUsage, fmt.Sprintf("parse --input %d", i), err)
				}
				inputs = append(inputs, input)
			}
			return s.runQuote(trimRootPath(cmd.CommandPath()), commands, inputs)
		},
	}
	cmd.Flags().StringVar(&commandsArg, "commands", "", "Opcode bytes as hex (one byte per step)")
	cmd.Flags().StringArrayVar(&inputArgs, "input", nil, "Step payload as hex (repeat once per step)")
	_ = cmd.MarkFlagRequired("commands")
	return cmd
}

func (s *runtimeState) newQuoteCommand() *cobra.Command {
	root := &cobra.Command{Use: "quote", Short: "Quote commands"}
	var stepArgs []string
	route := &cobra.Command{
		Use:   "route",
		Short: "Quote a chained route described with --step specs",
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := id.ParseChain(s.settings.Chain)
			if err != nil {
				return err
			}
			p, err := plan.ParseSteps(stepArgs, chain)
			if err != nil {
				return err
			}
			return s.runQuote(trimRootPath(cmd.CommandPath()), p.Commands(), p.Inputs())
		},
	}
	route.Flags().StringArrayVar(&stepArgs, "step", nil, "Route step spec, e.g. v3-exact-in:USDC/WETH@3000:2500000000 (repeatable; amount \"prev\" chains)")
	_ = route.MarkFlagRequired("step")
	root.AddCommand(route)
	return root
}

func (s *runtimeState) runQuote(commandPath string, commands []byte, inputs [][]byte) error {
	chain, err := id.ParseChain(s.settings.Chain)
	if err != nil {
		return err
	}
	if err := policy.CheckCommandsAllowed(s.settings.EnableCommands, commands); err != nil {
		return err
	}

	key := cache.Key(chain.EVMChainID, commands, inputs)
	return s.runCachedCommand(commandPath, key, s.settings.CacheTTL, func(ctx context.Context) (any, []model.ProviderStatus, []string, error) {
		quoterAddr, vaultAddr, err := s.resolveEndpoints(chain.EVMChainID)
		if err != nil {
			return nil, nil, nil, err
		}
		rpcURL, err := registry.ResolveRPCURL(s.settings.RPCURL, chain.EVMChainID)
		if err != nil {
			return nil, nil, nil, clierr.Wrap(clierr.CodeUsage, "resolve rpc endpoint", err)
		}
		caller, err := s.dial(ctx, rpcURL)
		if err != nil {
			return nil, nil, nil, clierr.Wrap(clierr.CodeUnavailable, "dial rpc endpoint", err)
		}

		amm := univ3.New(caller, quoterAddr)
		vault := vault4626.New(caller)
		pool := balancer.New(caller, vaultAddr)
		eng := engine.New(amm, vault, pool)

		start := time.Now()
		trace, err := executeWithRetries(ctx, eng, commands, inputs, s.settings.Retries)
		statuses := providerStatuses(commands, err, time.Since(start), amm.Info(), vault.Info(), pool.Info())
		if err != nil {
			return nil, statuses, nil, err
		}
		return s.buildQuoteResult(chain, trace), statuses, nil, nil
	})
}

func (s *runtimeState) resolveEndpoints(chainID int64) (common.Address, common.Address, error) {
	quoterHex, vaultHex, ok := registry.QuoteEndpoints(chainID)
	if s.settings.QuoterAddress != "" {
		quoterHex = s.settings.QuoterAddress
	}
	if s.settings.VaultAddress != "" {
		vaultHex = s.settings.VaultAddress
	}
	if !ok && (quoterHex == "" || vaultHex == "") {
		return common.Address{}, common.Address{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("no quoting endpoints registered for chain id %d; configure endpoints.quoter and endpoints.vault", chainID))
	}
	if !common.IsHexAddress(quoterHex) {
		return common.Address{}, common.Address{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid quoter address %q", quoterHex))
	}
	if !common.IsHexAddress(vaultHex) {
		return common.Address{}, common.Address{}, clierr.New(clierr.CodeUsage, fmt.Sprintf("invalid vault address %q", vaultHex))
	}
	return common.HexToAddress(quoterHex), common.HexToAddress(vaultHex), nil
}

// executeWithRetries re-runs the whole sequence on transport-level failures.
// Engine decode errors and provider reverts are deterministic and never
// retried.
func executeWithRetries(ctx context.Context, eng *engine.Engine, commands []byte, inputs [][]byte, retries int) ([]engine.StepTrace, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		trace, err := eng.Trace(ctx, commands, inputs)
		if err == nil {
			return trace, nil
		}
		lastErr = err
		if cErr, ok := clierr.As(err); !ok || cErr.Code != clierr.CodeUnavailable {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func providerStatuses(commands []byte, err error, elapsed time.Duration, ammInfo, vaultInfo, poolInfo model.ProviderInfo) []model.ProviderStatus {
	infoByFamily := map[string]model.ProviderInfo{
		"amm":           ammInfo,
		"vault":         vaultInfo,
		"weighted-pool": poolInfo,
	}
	seen := map[string]bool{}
	statuses := make([]model.ProviderStatus, 0, len(infoByFamily))
	for _, raw := range commands {
		family := engine.Command(raw).Family()
		info, ok := infoByFamily[family]
		if !ok || seen[family] {
			continue
		}
		seen[family] = true
		statuses = append(statuses, model.ProviderStatus{
			Name:      info.Name,
			Status:    statusFromErr(err),
			LatencyMS: elapsed.Milliseconds(),
		})
	}
	return statuses
}

func (s *runtimeState) buildQuoteResult(chain id.Chain, trace []engine.StepTrace) model.QuoteResult {
	steps := make([]model.StepResult, 0, len(trace))
	final := "0"
	for i, step := range trace {
		amount := step.Amount.String()
		steps = append(steps, model.StepResult{
			Index:   i,
			Opcode:  fmt.Sprintf("0x%02x", byte(step.Command)),
			Command: step.Command.Name(),
			Amount:  amount,
			Output:  hexutil.Encode(step.Output),
		})
		final = amount
	}
	return model.QuoteResult{
		ChainID:     chain.CAIP2,
		Steps:       steps,
		FinalAmount: final,
		FetchedAt:   s.runner.now().UTC().Format(time.RFC3339),
	}
}

type fetchFn func(ctx context.Context) (data any, providerStatus []model.ProviderStatus, warnings []string, err error)

func (s *runtimeState) runCachedCommand(commandPath, key string, ttl time.Duration, fetch fetchFn) error {
	s.resetCommandDiagnostics()
	cacheStatus := cacheMetaMiss()
	warnings := []string{}
	var staleData any
	staleAvailable := false
	staleObservedAge := time.Duration(0)
	staleObservedAt := time.Time{}
	staleCacheStatus := cacheMetaMiss()

	if s.settings.CacheEnabled && s.cache != nil {
		cached, err := s.cache.Get(key, s.settings.MaxStale)
		if err == nil && cached.Hit {
			entryStatus := model.CacheStatus{Status: "hit", AgeMS: cached.Age.Milliseconds(), Stale: cached.Stale}
			if !cached.Stale {
				var data any
				if err := json.Unmarshal(cached.Value, &data); err == nil {
					s.captureCommandDiagnostics(warnings, nil)
					return s.emitSuccess(commandPath, data, warnings, entryStatus, nil)
				}
			} else {
				var data any
				if err := json.Unmarshal(cached.Value, &data); err == nil {
					staleData = data
					staleAvailable = true
					staleObservedAge = cached.Age
					staleObservedAt = time.Now()
					staleCacheStatus = entryStatus
				}
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.settings.Timeout)
	defer cancel()
	data, providerStatus, providerWarnings, err := fetch(ctx)
	warnings = append(warnings, providerWarnings...)
	s.captureCommandDiagnostics(warnings, providerStatus)
	if err != nil {
		if staleAvailable {
			if !staleFallbackAllowed(err) {
				return err
			}
			currentStaleAge := staleObservedAge
			if !staleObservedAt.IsZero() {
				currentStaleAge += time.Since(staleObservedAt)
			}
			staleCacheStatus.AgeMS = currentStaleAge.Milliseconds()
			if s.settings.NoStale {
				return clierr.Wrap(clierr.CodeStale, "fresh quote failed and stale fallback is disabled (--no-stale)", err)
			}
			if staleExceedsBudget(currentStaleAge, ttl, s.settings.MaxStale) {
				return clierr.Wrap(clierr.CodeStale, "fresh quote failed and cached data exceeded stale budget", err)
			}
			warnings = append(warnings, "quote fetch failed; serving stale data within max-stale budget")
			s.captureCommandDiagnostics(warnings, providerStatus)
			return s.emitSuccess(commandPath, staleData, warnings, staleCacheStatus, providerStatus)
		}
		return err
	}

	if s.settings.CacheEnabled && s.cache != nil {
		if payload, err := json.Marshal(data); err == nil {
			_ = s.cache.Set(key, payload, ttl)
			cacheStatus = model.CacheStatus{Status: "write", AgeMS: 0, Stale: false}
		}
	}

	s.captureCommandDiagnostics(warnings, providerStatus)
	return s.emitSuccess(commandPath, data, warnings, cacheStatus, providerStatus)
}

func (s *runtimeState) emitSuccess(commandPath string, data any, warnings []string, cacheStatus model.CacheStatus, providers []model.ProviderStatus) error {
	env := model.Envelope{
		Version:  model.EnvelopeVersion,
		Success:  true,
		Data:     data,
		Error:    nil,
		Warnings: warnings,
		Meta: model.EnvelopeMeta{
			RequestID: newRequestID(),
			Timestamp: s.runner.now().UTC(),
			Command:   commandPath,
			Providers: providers,
			Cache:     cacheStatus,
		},
	}
	return out.Render(s.runner.stdout, env, s.settings)
}

func (s *runtimeState) renderError(commandPath string, err error, warnings []string, providers []model.ProviderStatus) {
	if strings.TrimSpace(commandPath) == "" {
		commandPath = s.lastCommand
		if commandPath == "" {
			commandPath = version.CLIName
		}
	}
	code := clierr.ExitCode(err)
	typ := "internal_error"
	message := err.Error()
	if cErr, ok := clierr.As(err); ok {
		message = cErr.Message
		if cErr.Cause != nil {
			message = fmt.Sprintf("%s: %v", cErr.Message, cErr.Cause)
		}
		switch cErr.Code {
		case clierr.CodeUsage:
			typ = "usage_error"
		case clierr.CodeInvalidCommand:
			typ = "invalid_command"
		case clierr.CodeLengthMismatch:
			typ = "length_mismatch"
		case clierr.CodePayloadTooShort:
			typ = "payload_too_short"
		case clierr.CodeProvider:
			typ = "provider_error"
		case clierr.CodeOverflow:
			typ = "arithmetic_overflow"
		case clierr.CodeUnavailable:
			typ = "provider_unavailable"
		case clierr.CodeStale:
			typ = "stale_data"
		case clierr.CodeBlocked:
			typ = "command_blocked"
		}
	}

	settings := s.settings
	if settings.OutputMode == "" {
		settings.OutputMode = "json"
	}
	settings.ResultsOnly = false
	settings.SelectFields = nil
	env := model.Envelope{
		Version: model.EnvelopeVersion,
		Success: false,
		Data:    []any{},
		Error: &model.ErrorBody{
			Code:    code,
			Type:    typ,
			Message: message,
		},
		Warnings: warnings,
		Meta: model.EnvelopeMeta{
			RequestID: newRequestID(),
			Timestamp: s.runner.now().UTC(),
			Command:   commandPath,
			Providers: providers,
			Cache:     cacheMetaBypass(),
		},
	}
	_ = out.Render(s.runner.stderr, env, settings)
}

func parseHexBytes(input string) ([]byte, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(input), "0x")
	if raw == "" {
		return []byte{}, nil
	}
	return hex.DecodeString(raw)
}

func newRequestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func trimRootPath(path string) string {
	parts := strings.Fields(path)
	if len(parts) <= 1 {
		return path
	}
	return strings.Join(parts[1:], " ")
}

func statusFromErr(err error) string {
	if err == nil {
		return "ok"
	}
	if cErr, ok := clierr.As(err); ok {
		switch cErr.Code {
		case clierr.CodeProvider:
			return "rejected"
		case clierr.CodeUnavailable:
			return "unavailable"
		default:
			return "error"
		}
	}
	return "error"
}

func cacheMetaBypass() model.CacheStatus {
	return model.CacheStatus{Status: "bypass", AgeMS: 0, Stale: false}
}

func cacheMetaMiss() model.CacheStatus {
	return model.CacheStatus{Status: "miss", AgeMS: 0, Stale: false}
}

func normalizeRunError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := clierr.As(err); ok {
		return err
	}
	if isLikelyUsageError(err) {
		return clierr.Wrap(clierr.CodeUsage, "invalid command input", err)
	}
	return clierr.Wrap(clierr.CodeInternal, "execute command", err)
}

func isLikelyUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	patterns := []string{
		"unknown command",
		"unknown flag",
		"required flag(s)",
		"flag needs an argument",
		"requires at least",
		"requires exactly",
		"accepts ",
		"invalid argument",
		"invalid args",
	}
	for _, p := range patterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

func staleExceedsBudget(age, ttl, maxStale time.Duration) bool {
	if age <= ttl {
		return false
	}
	if maxStale < 0 {
		return false
	}
	return age > ttl+maxStale
}

// Provider reverts are deterministic for a given block; only transport-level
// failures fall back to stale cache entries.
func staleFallbackAllowed(err error) bool {
	cErr, ok := clierr.As(err)
	if !ok {
		return false
	}
	return cErr.Code == clierr.CodeUnavailable
}

func shouldOpenCache(commandPath string) bool {
	switch normalizeCommandPath(commandPath) {
	case "", "version", "schema", "providers", "providers list", "commands", "commands list":
		return false
	default:
		return true
	}
}

func normalizeCommandPath(commandPath string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(commandPath))), " ")
}

func (s *runtimeState) resetCommandDiagnostics() {
	s.lastWarnings = nil
	s.lastProviders = nil
}

func (s *runtimeState) captureCommandDiagnostics(warnings []string, providers []model.ProviderStatus) {
	if len(warnings) == 0 {
		s.lastWarnings = nil
	} else {
		s.lastWarnings = append([]string(nil), warnings...)
	}
	if len(providers) == 0 {
		s.lastProviders = nil
	} else {
		s.lastProviders = append([]model.ProviderStatus(nil), providers...)
	}
}
