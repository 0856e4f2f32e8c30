package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yusufk/chefmate/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage cached curricula",
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached curricula",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(resolveDBPath(cmd))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		entries, err := s.ListCurricula(context.Background())
		if err != nil {
			return fmt.Errorf("list curricula: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No cached curricula.")
			return nil
		}

		fmt.Printf("%-19s  %-30s  %s\n", "Created", "Topic", "Key")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range entries {
			topic := e.Topic
			if len(topic) > 30 {
				topic = topic[:30]
			}
			fmt.Printf("%-19s  %-30s  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				topic,
				e.Key[:12])
		}
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all cached curricula",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(resolveDBPath(cmd))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		n, err := s.ClearCurricula(context.Background())
		if err != nil {
			return fmt.Errorf("clear curricula: %w", err)
		}
		fmt.Printf("Removed %d cached curricula.\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
