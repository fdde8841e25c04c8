package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lifeplan/income-engine/internal/calculation"
	"github.com/lifeplan/income-engine/internal/config"
	"github.com/lifeplan/income-engine/internal/domain"
	"github.com/lifeplan/income-engine/internal/output"
	"github.com/lifeplan/income-engine/internal/server"
	"github.com/lifeplan/income-engine/internal/session"
)

func main() {
	root := &cobra.Command{
		Use:   "lifeplan",
		Short: "Lifetime income and cash-flow projection engine",
	}
	root.AddCommand(newProjectCmd(), newCareerCmd(), newServeCmd(), newExampleCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newProjectCmd() *cobra.Command {
	var (
		inputPath  string
		format     string
		outputPath string
		storePath  string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project lifetime income from a plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			plan, err := parser.LoadFromFile(inputPath)
			if err != nil {
				return err
			}

			if storePath != "" {
				if err := persistPlan(storePath, plan); err != nil {
					return err
				}
			}

			engine := calculation.NewCalculationEngine()
			engine.Debug = debug
			if debug {
				engine.Logger = stderrLogger{}
			}

			household := engine.ProjectHousehold(
				&plan.Self.Profile, profileOf(plan.Partner),
				plan.Self.Career, careerOf(plan.Partner),
			)

			formatter, err := output.GetFormatterByName(format)
			if err != nil {
				return err
			}
			data, err := formatter.Format(household)
			if err != nil {
				return err
			}

			if outputPath == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			log.Printf("wrote %s report to %s", formatter.Name(), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "plan.yaml", "plan input file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("output format %v", output.FormatNames()))
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&storePath, "store", "", "profile store file; enables session persistence")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

// persistPlan applies the reset-on-new-session rule and stores the plan's
// profiles under the session's per-field keys.
func persistPlan(storePath string, plan *config.PlanInput) error {
	store, err := session.NewFileStore(storePath)
	if err != nil {
		return err
	}
	ctx := session.NewSessionContext(store)
	ctx.OnSessionChange(func() {
		log.Printf("new planning session %q: stored profiles cleared", plan.SessionID)
	})
	if err := ctx.Begin(plan.SessionID); err != nil {
		return err
	}
	if err := ctx.SaveProfile(session.PersonSelf, &plan.Self.Profile); err != nil {
		return err
	}
	if plan.Partner != nil {
		if err := ctx.SaveProfile(session.PersonPartner, &plan.Partner.Profile); err != nil {
			return err
		}
	}
	return nil
}

func newCareerCmd() *cobra.Command {
	var (
		occupation string
		rank       string
		income     float64
		outlook    string
	)

	cmd := &cobra.Command{
		Use:   "career",
		Short: "Build a 5-stage career plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := calculation.BuildCareerPlan(occupation, rank, domain.DecimalFromFloat(income), outlook)
			for _, stage := range stages {
				fmt.Printf("%-14s %-26s ages %-7s %d years  %s yuan/year\n",
					stage.StageName, stage.Position, stage.AgeRange, stage.DurationYears, stage.YearlyIncome.StringFixed(0))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&occupation, "occupation", "", "occupation key")
	cmd.Flags().StringVar(&rank, "rank", "", "current rank on the occupation's ladder")
	cmd.Flags().Float64Var(&income, "income", 0, "declared annual income in ten-thousand units (overrides the system base)")
	cmd.Flags().StringVar(&outlook, "outlook", calculation.OutlookNormal, "outlook: normal, stagnant or declining")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = os.Getenv("PORT")
			}
			if port == "" {
				port = "8080"
			}
			srv := server.New(calculation.NewCalculationEngine())
			return srv.ListenAndServe(":" + port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT or 8080)")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example plan file",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := config.NewInputParser().CreateExamplePlan()
			data, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to encode example plan: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func profileOf(plan *config.PersonPlan) *domain.PersonIncomeProfile {
	if plan == nil {
		return nil
	}
	return &plan.Profile
}

func careerOf(plan *config.PersonPlan) *calculation.CareerQuery {
	if plan == nil {
		return nil
	}
	return plan.Career
}

// stderrLogger adapts the engine Logger interface to stdlib log.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { log.Printf("DEBUG "+format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }
