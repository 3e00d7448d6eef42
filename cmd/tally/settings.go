package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
)

var langCmd = &cobra.Command{
	Use:   "lang [code]",
	Short: "Show or set the interface language",
	Args:  cobra.MaximumNArgs(1),
	RunE:  setLanguage,
}

var themeCmd = &cobra.Command{
	Use:   "theme [color|bw]",
	Short: "Show or set the color theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  setTheme,
}

func setLanguage(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		if len(args) == 1 {
			if !i18n.Supported(args[0]) {
				return fmt.Errorf("unsupported language %q", args[0])
			}
			a.store.SetLanguage(args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.store.Language())
		return nil
	})
}

func setTheme(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app) error {
		if len(args) == 1 {
			theme := model.Theme(args[0])
			if !theme.IsValid() {
				return fmt.Errorf("%w: %q", model.ErrInvalidTheme, args[0])
			}
			a.store.SetTheme(theme)
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.store.Theme())
		return nil
	})
}
