package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"messenger-formbot/internal/config"
	"messenger-formbot/internal/database"
	"messenger-formbot/internal/form"
	"messenger-formbot/internal/questions"
)

func loadQuestions(cmd *cobra.Command) ([]form.Question, error) {
	path, err := cmd.Flags().GetString("questions")
	if err != nil {
		return nil, err
	}
	return questions.Load(path)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a questionnaire file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(cmd)
			if err != nil {
				return err
			}
			for _, q := range qs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%s, %d options)\n", q.Index, q.Field, q.TemplateType, len(q.Options))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d questions\n", len(qs))
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var (
		index   int
		payload string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the message sent for a question index and form state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := loadQuestions(cmd)
			if err != nil {
				return err
			}
			engine := form.NewEngine(qs)
			state := form.NewState()
			if payload != "" {
				if state, err = engine.DecodeState(payload); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("index") {
				index = state.QuestionNumber
			}
			msg, err := engine.NextPrompt(index, state)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(msg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "Question index (defaults to the state's question number)")
	cmd.Flags().StringVar(&payload, "state", "", "Encoded form state, as found in a postback payload")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the message log tables (uses DB_* environment)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if db == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "message log disabled (DB_DRIVER=none), nothing to migrate")
				return nil
			}
			if err := database.Close(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s message log\n", cfg.DBDriver)
			return nil
		},
	}
}
