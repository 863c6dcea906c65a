package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taxlever/taxlever/internal/baseline"
	"github.com/taxlever/taxlever/internal/config"
	"github.com/taxlever/taxlever/internal/domain"
	"github.com/taxlever/taxlever/internal/impact"
	"github.com/taxlever/taxlever/internal/output"
	"github.com/taxlever/taxlever/internal/rules"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const defaultRulesPath = "data/strategy_rules.json"

// rulesPath resolves the rule-table path: flag, then environment, then the
// shipped default.
func rulesPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("TAXLEVER_RULES"); env != "" {
		return env
	}
	return defaultRulesPath
}

func newLogger(debugMode bool) (*zap.Logger, error) {
	if debugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var rootCmd = &cobra.Command{
	Use:   "taxlever",
	Short: "Tax strategy estimation CLI",
	Long:  "Estimates baseline tax liability and evaluates, ranks, and applies tax-reduction strategies",
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [intake-file]",
	Short: "Run the full estimation pipeline over an intake profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugMode, _ := cmd.Flags().GetBool("debug")
		logger, err := newLogger(debugMode)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		intake, err := config.NewIntakeParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		catalog := domain.DefaultCatalog()
		rulesFile, _ := cmd.Flags().GetString("rules")
		ruleRows, err := rules.LoadRules(rulesPath(rulesFile), catalog)
		if err != nil {
			return err
		}
		logger.Debug("rule table loaded", zap.Int("rows", len(ruleRows)))

		calc := baseline.NewCalculator()
		base, breakdown, err := calc.ComputeBaseline(intake)
		if err != nil {
			return err
		}
		logger.Debug("baseline computed",
			zap.String("taxable_income", base.TaxableIncome.StringFixed(2)),
			zap.String("total_tax", base.TotalTax.StringFixed(2)),
			zap.String("state_disclosure", breakdown.StateDisclosure))

		evals := rules.Evaluate(intake, ruleRows)

		engine := impact.NewEngine(calc, catalog, impact.NewRegistry(catalog))
		applyPotential, _ := cmd.Flags().GetBool("apply-potential")
		projection, err := engine.Project(cmd.Context(), intake, base, evals, applyPotential)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			jf := &output.JSONFormatter{Pretty: true}
			text, err := jf.Format(&projection)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, text)
		default:
			tf := &output.TableFormatter{}
			fmt.Fprint(os.Stdout, tf.Format(&projection))
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Rule table utilities",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate [rules-file]",
	Short: "Validate a rule table, reporting every offending row",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		// Same resolution as estimate: arg, then $TAXLEVER_RULES, then the
		// shipped default.
		path := rulesPath(arg)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var table rules.RuleTable
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("parse rule table %s: %w", path, err)
		}
		issues := rules.ValidateTable(table, domain.DefaultCatalog())
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintln(os.Stderr, issue.String())
			}
			return fmt.Errorf("%d invalid row(s) in %s", len(issues), path)
		}
		fmt.Fprintf(os.Stdout, "%s: %d rules ok (version %s)\n", path, len(table.Rules), table.Version)
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "taxlever %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

func main() {
	// Optional .env for TAXLEVER_RULES and friends; absence is fine.
	_ = godotenv.Load()

	estimateCmd.Flags().String("rules", "", "Path to the strategy rule table (default $TAXLEVER_RULES or "+defaultRulesPath+")")
	estimateCmd.Flags().String("format", "table", "Output format: table or json")
	estimateCmd.Flags().Bool("apply-potential", false, "Apply strategies whose eligibility is POTENTIAL")
	estimateCmd.Flags().Bool("debug", false, "Enable debug logging")

	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
