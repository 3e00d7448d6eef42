package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/session"
)

var (
	addName        string
	addDescription string
	addRepeats     int

	listJSON    bool
	historyJSON bool

	restartRepeats     int
	restartDescription string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new goal",
	Args:  cobra.NoArgs,
	RunE:  addGoal,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List current and held-over goals",
	Args:  cobra.NoArgs,
	RunE:  listGoals,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed goals, newest first",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

var tapCmd = &cobra.Command{
	Use:   "tap <id>",
	Short: "Record one repetition",
	Args:  cobra.ExactArgs(1),
	RunE:  tapGoal,
}

var undoCmd = &cobra.Command{
	Use:   "undo <id>",
	Short: "Remove the last repetition",
	Args:  cobra.ExactArgs(1),
	RunE:  undoGoal,
}

var holdCmd = &cobra.Command{
	Use:   "hold <id>",
	Short: "Hold a goal over",
	Args:  cobra.ExactArgs(1),
	RunE:  holdGoal,
}

var continueCmd = &cobra.Command{
	Use:   "continue <id>",
	Short: "Resume a held-over goal",
	Args:  cobra.ExactArgs(1),
	RunE:  continueGoal,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal from either list",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteGoal,
}

var restartCmd = &cobra.Command{
	Use:   "restart <id>",
	Short: "Start a completed goal again",
	Args:  cobra.ExactArgs(1),
	RunE:  restartGoal,
}

func init() {
	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Goal name (required)")
	addCmd.Flags().IntVarP(&addRepeats, "repeats", "r", 0, "Target repetitions (required)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Goal description")
	if err := addCmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("Failed to mark name flag as required: %v", err))
	}
	if err := addCmd.MarkFlagRequired("repeats"); err != nil {
		panic(fmt.Sprintf("Failed to mark repeats flag as required: %v", err))
	}

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print goals as JSON")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print history as JSON")

	restartCmd.Flags().IntVarP(&restartRepeats, "repeats", "r", 0, "Target repetitions (defaults to the completed target)")
	restartCmd.Flags().StringVarP(&restartDescription, "description", "d", "", "Replace the description")
}

func addGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, err := a.store.Create(addName, addDescription, addRepeats)
		if err != nil {
			return validationError(a, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Goal created: %s\n", shortID(g.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "  %s: %d %s\n", g.Name, g.TotalRepeats, a.catalog.Repeats(g.TotalRepeats))
		return nil
	})
}

func listGoals(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		goals := append(a.store.CurrentGoals(), a.store.HeldOverGoals()...)
		out := cmd.OutOrStdout()
		if listJSON {
			return writeJSON(out, goals)
		}
		if len(goals) == 0 {
			fmt.Fprintln(out, a.catalog.Translate("noGoalsYet"))
			return nil
		}
		for i, g := range goals {
			line := fmt.Sprintf("%d. [%s] %s %d/%d %s %d", i+1, shortID(g.ID), g.Name, g.CurrentRepeats, g.TotalRepeats, a.catalog.Translate("set"), g.AttemptCount)
			if g.IsHeldOver {
				line += " (" + a.catalog.Translate("heldOver") + ")"
			}
			fmt.Fprintln(out, line)
		}
		a.printSavedAt(out)
		return nil
	})
}

func listHistory(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		goals := a.store.CompletedGoals()
		model.SortByCompletion(goals)
		out := cmd.OutOrStdout()
		if historyJSON {
			return writeJSON(out, goals)
		}
		if len(goals) == 0 {
			fmt.Fprintln(out, a.catalog.Translate("noCompletedGoals"))
			return nil
		}
		for _, g := range goals {
			when := "-"
			if g.CompletedAt != nil {
				when = humanize.Time(*g.CompletedAt)
			}
			fmt.Fprintf(out, "[%s] %s %d %s, %s %d, %s\n", shortID(g.ID), g.Name, g.TotalRepeats, a.catalog.Repeats(g.TotalRepeats), a.catalog.Translate("set"), g.AttemptCount, when)
		}
		return nil
	})
}

func tapGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, err := a.resolveActive(args[0])
		if err != nil {
			return err
		}
		s, err := session.Open(g.ID, session.Options{Store: a.store})
		if err != nil {
			return err
		}
		defer s.Close()
		if !s.Increment() {
			return fmt.Errorf("cannot tap %s: held over or at target", shortID(g.ID))
		}
		out := cmd.OutOrStdout()
		if s.State() == session.JustCompleted {
			fmt.Fprintf(out, "%s %s: %s\n", a.catalog.Translate("congratulations"), a.catalog.Translate("goalCompleted"), g.Name)
			return nil
		}
		live, _ := s.Goal()
		fmt.Fprintf(out, "%s %d/%d\n", live.Name, live.CurrentRepeats, live.TotalRepeats)
		return nil
	})
}

func undoGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, err := a.resolveActive(args[0])
		if err != nil {
			return err
		}
		s, err := session.Open(g.ID, session.Options{Store: a.store})
		if err != nil {
			return err
		}
		defer s.Close()
		if !s.Undo() {
			return fmt.Errorf("nothing to undo for %s", shortID(g.ID))
		}
		live, _ := s.Goal()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d/%d\n", live.Name, live.CurrentRepeats, live.TotalRepeats)
		return nil
	})
}

func holdGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, err := a.resolveActive(args[0])
		if err != nil {
			return err
		}
		a.store.HoldOver(g.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.catalog.Translate("holdOver"), g.Name)
		return nil
	})
}

func continueGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, err := a.resolveActive(args[0])
		if err != nil {
			return err
		}
		a.store.Continue(g.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.catalog.Translate("continue"), g.Name)
		return nil
	})
}

func deleteGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		g, _, err := a.resolve(args[0])
		if err != nil {
			return err
		}
		a.store.Delete(g.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", a.catalog.Translate("delete"), g.Name)
		return nil
	})
}

func restartGoal(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		done, completed, err := a.resolve(args[0])
		if err != nil {
			return err
		}
		if !completed {
			return fmt.Errorf("goal %s is not completed", shortID(done.ID))
		}
		repeats := restartRepeats
		if repeats == 0 {
			repeats = done.TotalRepeats
		}
		desc := done.Description
		if cmd.Flags().Changed("description") {
			desc = restartDescription
		}
		g, err := a.store.Restart(done.ID, repeats, desc)
		if err != nil {
			return validationError(a, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s (%s %d) %s\n", a.catalog.Translate("startAgain"), g.Name, a.catalog.Translate("set"), g.AttemptCount, shortID(g.ID))
		return nil
	})
}

func validationError(a *app, err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return errors.New(ve.Message(a.catalog.Translate))
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
