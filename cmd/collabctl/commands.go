package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mentor-collab/internal/app"
	"mentor-collab/internal/config"
	"mentor-collab/internal/db"
	"mentor-collab/internal/domain"
	"mentor-collab/internal/service"
)

var (
	tierFlag      int
	directionFlag string
	statusFlag    string
	asMentorFlag  string
	printSchema   bool
	verboseFlag   bool

	cfg         *config.Config
	application *app.App

	rootCmd = &cobra.Command{
		Use:           "collabctl",
		Short:         "Inspect and drive mentorship collaboration matching",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			loaded, err := config.LoadConfig()
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if application != nil {
				application.Close()
				application = nil
			}
		},
	}

	suggestCmd = &cobra.Command{
		Use:   "suggest [mentorship-id]",
		Short: "List ranked collaboration suggestions for a mentorship",
		Args:  cobra.ExactArgs(1),
		RunE:  runSuggest,
	}

	traitsCmd = &cobra.Command{
		Use:   "traits [mentorship-id]",
		Short: "Show strengths, weaknesses and neutral categories of a mentorship",
		Args:  cobra.ExactArgs(1),
		RunE:  runTraits,
	}

	requestCmd = &cobra.Command{
		Use:   "request [initiating-id] [target-id]",
		Short: "Submit a collaboration request for the given tier",
		Args:  cobra.ExactArgs(2),
		RunE:  runRequest,
	}

	respondCmd = &cobra.Command{
		Use:   "respond [request-id] [accept|reject]",
		Short: "Accept or reject a pending collaboration request",
		Args:  cobra.ExactArgs(2),
		RunE:  runRespond,
	}

	requestsCmd = &cobra.Command{
		Use:   "requests [mentorship-id]",
		Short: "List collaboration requests of a mentorship",
		Args:  cobra.ExactArgs(1),
		RunE:  runListRequests,
	}

	endCmd = &cobra.Command{
		Use:   "end [collaboration-id]",
		Short: "End an active collaboration",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnd,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}

	seedCmd = &cobra.Command{
		Use:   "seed [file]",
		Short: "Load mentorships and evaluation ratings from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeed,
	}

	tokenCmd = &cobra.Command{
		Use:   "token [mentor-id]",
		Short: "Sign a development access token for a mentor",
		Args:  cobra.ExactArgs(1),
		RunE:  runToken,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log service activity to stderr")
	rootCmd.PersistentFlags().StringVar(&asMentorFlag, "as", "", "act as this mentor id (enables ownership checks)")

	requestCmd.Flags().IntVar(&tierFlag, "tier", int(domain.TierFallback), "tier snapshot (1-4)")
	requestsCmd.Flags().StringVar(&directionFlag, "direction", "all", "incoming, outgoing or all")
	requestsCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status (pending, accepted, rejected)")
	migrateCmd.Flags().BoolVar(&printSchema, "print", false, "print the schema instead of applying it")

	rootCmd.AddCommand(suggestCmd, traitsCmd, requestCmd, respondCmd, requestsCmd, endCmd, migrateCmd, seedCmd, tokenCmd)
}

// openApp cablea los servicios y, con SEED_FILE, carga los datos iniciales.
func openApp(ctx context.Context) (*app.App, error) {
	if application != nil {
		return application, nil
	}
	logger := zap.NewNop()
	if verboseFlag {
		logger = zap.NewExample()
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.SeedFile != "" {
		data, err := app.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := a.Seed(ctx, data); err != nil {
			a.Close()
			return nil, err
		}
	}
	application = a
	return a, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	suggestions, err := a.Suggestions.GetSuggestions(ctx, args[0])
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "no suggestions")
		return nil
	}
	for _, s := range suggestions {
		fmt.Fprintf(w, "%d %-16s %-12s %-24s %s\n",
			s.Tier, s.TierName, s.CounterpartMentorshipID, s.CounterpartName, formatCategories(s.MatchedCategories))
	}
	return nil
}

func runTraits(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	summary, err := a.Suggestions.GetTraits(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), summary)
}

func runRequest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	req, err := a.Requests.SubmitRequest(ctx, service.SubmitRequestInput{
		InitiatingMentorshipID: args[0],
		TargetMentorshipID:     args[1],
		Tier:                   domain.Tier(tierFlag),
		ActorMentorID:          asMentorFlag,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), req)
}

func runRespond(cmd *cobra.Command, args []string) error {
	decision, err := domain.ParseDecision(args[1])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	res, err := a.Requests.RespondToRequest(ctx, service.RespondInput{
		RequestID:     args[0],
		Decision:      decision,
		ActorMentorID: asMentorFlag,
	})
	if err != nil {
		if domain.Retryable(err) {
			return fmt.Errorf("%w (retry the command)", err)
		}
		return err
	}
	return printJSON(cmd.OutOrStdout(), res)
}

func runListRequests(cmd *cobra.Command, args []string) error {
	direction, err := domain.ParseRequestDirection(directionFlag)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	list, err := a.Requests.ListRequests(ctx, args[0], asMentorFlag, direction, domain.RequestStatus(statusFlag))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), list)
}

func runEnd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	ended, err := a.Collaborations.EndCollaboration(ctx, args[0], asMentorFlag)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), ended)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if printSchema {
		_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
		return err
	}
	if cfg.StorageDriver != config.StoragePostgres {
		return fmt.Errorf("migrate requires STORAGE_DRIVER=%s", config.StoragePostgres)
	}
	ctx := cmd.Context()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := db.Migrate(ctx, pool); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := app.LoadSeedFile(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	if err := a.Seed(ctx, data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d mentorships, %d ratings\n", len(data.Mentorships), len(data.Ratings))
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	jwtSvc := service.NewJWTService(cfg.JWTSecret, 0)
	token, err := jwtSvc.SignAccessToken(args[0], "")
	if err != nil {
		return fmt.Errorf("sign token (is JWT_SECRET set?): %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func formatCategories(categories []string) string {
	if len(categories) == 0 {
		return "-"
	}
	return strings.Join(categories, ", ") + " (" + strconv.Itoa(len(categories)) + ")"
}
