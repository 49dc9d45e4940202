/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryand2626/recruitment-pipeline/internal/titles"
)

var (
	expandFile    string
	expandSuggest bool
	expandJSON    bool
)

// expandCmd represents the expand command
var expandCmd = &cobra.Command{
	Use:   "expand [title ...]",
	Short: "Expand job titles into known synonyms and variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExpand(args)
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().StringVarP(
		&expandFile,
		"file",
		"f",
		"",
		"path to a .txt or .csv file of job titles",
	)
	expandCmd.Flags().BoolVar(&expandSuggest, "suggest", false, "suggest canonical titles for unknown seeds")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "print the expanded list as JSON")
}

func runExpand(args []string) error {
	seeds, err := collectTitles(args, expandFile)
	if err != nil {
		return err
	}

	expanded := titles.Expand(seeds)

	if expandJSON {
		data, err := json.MarshalIndent(expanded, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal titles: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Got %d seed titles.\n", len(seeds))
	fmt.Println("--- Expanded Titles ---")
	for _, title := range expanded {
		fmt.Println(title)
	}
	fmt.Printf("Expanded to %d titles.\n", len(expanded))

	if expandSuggest {
		fmt.Println("--- Suggestions ---")
		for _, seed := range seeds {
			if titles.Synonyms(seed) != nil {
				continue
			}
			if match, ok := titles.Suggest(seed); ok {
				fmt.Printf("%s: did you mean %q?\n", seed, match)
			}
		}
	}

	return nil
}
