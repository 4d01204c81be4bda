package setup

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/wlplease/dashboard/config"
	"github.com/wlplease/dashboard/internal/domain"
)

// GeneratedConfigFile is where the wizard writes its result.
const GeneratedConfigFile = "config.gen.yaml"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

func printHeader(step string) {
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("MARKET DASHBOARD SETUP"))
	if step != "" {
		fmt.Println(stepStyle.Render(step))
	}
}

// RunTUI launches the terminal configuration wizard and writes the result
// to the generated config file.
func RunTUI() error {
	var (
		pair             string
		platform         string
		interval         string
		lookbackStr      string
		schedule         string
		phasePolicy      string
		predictionPolicy string
		generator        string
		llmAPIURL        string
		llmModel         string
		addr             string
		sentimentURL     string
		modelEndpoint    string
		confirm          bool
	)

	// defaults
	interval = config.DefaultInterval
	lookbackStr = strconv.Itoa(config.DefaultLookback)
	schedule = "@every 15m"
	phasePolicy = "trend"
	predictionPolicy = "range"
	generator = config.GeneratorRuleBased
	llmAPIURL = "https://openrouter.ai/api/v1/chat/completions"
	llmModel = "deepseek/deepseek-v3.2-exp"
	addr = config.DefaultAddr

	printHeader("")
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's get your dashboard analyzing in style.\n"))

	printHeader("STEP 1: ASSET")
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Asset Pair").
				Description("Must contain underscore (e.g. BTC_USDT)").
				Value(&pair).
				Validate(func(s string) error {
					_, err := domain.AssetFromString(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	printHeader("STEP 2: PLATFORM")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Market Data Platform").
				Options(
					huh.NewOption("Binance", "binance"),
					huh.NewOption("Bybit", "bybit"),
					huh.NewOption("Hyperliquid", "hyperliquid"),
				).
				Value(&platform),
		),
	).Run()
	if err != nil {
		return err
	}

	printHeader("STEP 3: TIMING")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Candle Interval").
				Options(
					huh.NewOption("15 minutes", "15m"),
					huh.NewOption("1 hour", "1h"),
					huh.NewOption("4 hours", "4h"),
					huh.NewOption("1 day", "1d"),
				).
				Value(&interval),
			huh.NewInput().
				Title("Lookback Candles").
				Description(fmt.Sprintf("How many candles to analyze (min %d)", domain.MinHistoryPoints)).
				Value(&lookbackStr).
				Validate(validateLookback),
			huh.NewInput().
				Title("Analysis Schedule").
				Description("Cron or @every form (e.g. @every 15m)").
				Value(&schedule),
		),
	).Run()
	if err != nil {
		return err
	}

	printHeader("STEP 4: ANALYSIS STYLE")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Market Phase Labels").
				Options(
					huh.NewOption("Trend alignment (bullish/bearish/...)", "trend"),
					huh.NewOption("Wyckoff (markup/markdown/...)", "wyckoff"),
				).
				Value(&phasePolicy),
			huh.NewSelect[string]().
				Title("Price Prediction Method").
				Options(
					huh.NewOption("Volatility ranges", "range"),
					huh.NewOption("Fibonacci projections", "fibonacci"),
				).
				Value(&predictionPolicy),
		),
	).Run()
	if err != nil {
		return err
	}

	printHeader("STEP 5: RECOMMENDATIONS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Strategy Generator").
				Options(
					huh.NewOption("Rule based (deterministic)", config.GeneratorRuleBased),
					huh.NewOption("LLM (model-written rationale)", config.GeneratorLLM),
				).
				Value(&generator),
		),
	).Run()
	if err != nil {
		return err
	}

	if generator == config.GeneratorLLM {
		printHeader("STEP 5b: LLM SETTINGS")
		err = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("LLM API URL").
					Value(&llmAPIURL),
				huh.NewInput().
					Title("Model Name").
					Value(&llmModel),
			),
		).Run()
		if err != nil {
			return err
		}
		fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("The API key is read from the LLM_API_KEY environment variable."))
	}

	printHeader("STEP 6: WEB & FEEDS")
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("host:port for the dashboard").
				Value(&addr),
			huh.NewInput().
				Title("Sentiment Feed URL").
				Description("Optional, leave empty to skip sentiment").
				Value(&sentimentURL),
			huh.NewInput().
				Title("Trend Model Endpoint").
				Description("Optional, leave empty for the built-in estimator").
				Value(&modelEndpoint),
		),
	).Run()
	if err != nil {
		return err
	}

	printHeader("FINAL CONFIRMATION")
	summary := fmt.Sprintf(
		"Pair: %s\nPlatform: %s\nInterval: %s\nSchedule: %s\nPhases: %s\nPredictions: %s\nGenerator: %s\nAddress: %s\n",
		pair, platform, interval, schedule, phasePolicy, predictionPolicy, generator, addr,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save and start").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	lookback, _ := strconv.Atoi(lookbackStr)
	cfg := config.Config{
		Web:   config.WebConfig{Addr: addr},
		Feeds: config.FeedsConfig{SentimentURL: sentimentURL},
		Model: config.ModelConfig{Endpoint: modelEndpoint},
		Strategy: config.StrategyConfig{
			Generator: generator,
		},
		Assets: []config.AssetConfig{{
			Pair:             pair,
			Platform:         platform,
			Interval:         interval,
			Lookback:         lookback,
			PhasePolicy:      phasePolicy,
			PredictionPolicy: predictionPolicy,
			Schedule:         schedule,
		}},
	}
	if generator == config.GeneratorLLM {
		cfg.Strategy.LLMAPIURL = llmAPIURL
		cfg.Strategy.LLMModel = llmModel
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}
	if err := os.WriteFile(GeneratedConfigFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s\nStarting dashboard...", GeneratedConfigFile)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

func validateLookback(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < domain.MinHistoryPoints {
		return fmt.Errorf("must be at least %d", domain.MinHistoryPoints)
	}
	return nil
}
