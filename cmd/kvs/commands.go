package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/heysubinoy/kvs/internal/store"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under key",
		Long: `Prints the value for key without a trailing newline.
Prints nothing when the key is not set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			defer a.report("get", s)

			if value, ok := s.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), value)
			}
			return nil
		},
		Annotations: map[string]string{storeAnnotation: ""},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store value under key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			defer a.report("set", s)

			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			return a.files.Save(s)
		},
		Annotations: map[string]string{storeAnnotation: ""},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove key from the store",
		Long: `Removes key from the store. Removing a key that is not set
is not an error; the store file is rewritten either way.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			defer a.report("remove", s)

			if err := s.Delete(args[0]); err != nil {
				return err
			}
			return a.files.Save(s)
		},
		Annotations: map[string]string{storeAnnotation: ""},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every key and value, sorted by key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			defer a.report("list", s)

			entries := s.Entries()
			out := cmd.OutOrStdout()
			for _, key := range slices.Sorted(maps.Keys(entries)) {
				fmt.Fprintf(out, "'%s' => '%s'\n", key, entries[key])
			}
			return nil
		},
		Annotations: map[string]string{storeAnnotation: ""},
	}
}

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the store file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.files.Clear()
		},
		Annotations: map[string]string{storeAnnotation: ""},
	}
}

// load reads the store file and wraps the result for instrumentation.
func (a *app) load() (*store.InstrumentedStore, error) {
	s, err := a.files.Load()
	if err != nil {
		return nil, err
	}
	return store.NewInstrumentedStore(s), nil
}

func (a *app) report(command string, s *store.InstrumentedStore) {
	a.logger.Debug("command finished",
		zap.String("command", command),
		zap.Int("entries", s.Len()),
		zap.Object("ops", s.Metrics()),
	)
}
