/*
Copyright © 2025 speaktech

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/speaktech/transqiita/internal/detector"
	"github.com/speaktech/transqiita/internal/orchestrator"
	"github.com/speaktech/transqiita/internal/planner"
	"github.com/speaktech/transqiita/internal/qiita"
	"github.com/speaktech/transqiita/internal/store"
)

var version = "0.1.0"

var (
	useGist    bool
	useTweet   bool
	usePrivate bool
	autoMode   bool

	serviceName   string
	targetLang    string
	credentials   string
	mymemoryEmail string

	apiBaseURL string
	perPage    int
	noMemory   bool
)

var rootCmd = &cobra.Command{
	Use:   "transqiita",
	Short: "Translate your Qiita articles into English and republish them",
	Long: `transqiita fetches your articles from Qiita, translates the prose into
English while leaving fenced code blocks untouched, and uploads the
translations back to Qiita. Optionally the translation is also published
as a gist and announced with a tweet (both handled by Qiita itself).

The access token is read from the QIITA_ACCESS_TOKEN environment variable
and can be overridden with --token.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

// Execute runs the root command; any failure exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&useGist, "gist", false, "also upload the translated article to gist")
	rootCmd.Flags().BoolVar(&useTweet, "tweet", false, "tweet about the translated article")
	rootCmd.Flags().BoolVar(&usePrivate, "private", false, "publish the translation as a private article")
	rootCmd.Flags().BoolVar(&autoMode, "auto", false, "translate and upload every candidate without prompting")
	rootCmd.Flags().String("token", "", "Qiita access token (overrides QIITA_ACCESS_TOKEN)")

	rootCmd.Flags().StringVar(&serviceName, "service", "google", "translation backend (google, mymemory)")
	rootCmd.Flags().StringVar(&targetLang, "target", "en", "target language code")
	rootCmd.Flags().StringVarP(&credentials, "credentials", "c", "", "path to Google Cloud credentials")
	rootCmd.Flags().StringVar(&mymemoryEmail, "mymemory-email", "", "MyMemory email (for higher limits)")

	rootCmd.Flags().StringVar(&apiBaseURL, "base-url", "", "override the Qiita API base URL")
	rootCmd.Flags().IntVar(&perPage, "per-page", 100, "articles fetched per page")
	rootCmd.Flags().BoolVar(&noMemory, "no-memory", false, "disable the per-run segment memory")

	viper.BindPFlag("token", rootCmd.Flags().Lookup("token"))
	viper.BindEnv("token", "QIITA_ACCESS_TOKEN")
}

func run(ctx context.Context) error {
	token := viper.GetString("token")
	if err := qiita.ValidateToken(token); err != nil {
		return err
	}

	svc, err := buildService(serviceName, credentials, mymemoryEmail)
	if err != nil {
		return err
	}

	client := qiita.New(qiita.Config{Token: token, BaseURL: apiBaseURL})

	fmt.Fprintf(os.Stderr, "Fetching your articles...\n")
	items, err := client.ListAuthenticatedItems(ctx, 1, perPage)
	if err != nil {
		return err
	}

	det := detector.New()
	candidates := planner.Plan(items, det)

	if len(candidates) == 0 {
		fmt.Println("No new or updated articles to translate.")
		return nil
	}

	var mem *store.Store
	if !noMemory {
		mem, err = store.Open()
		if err != nil {
			return fmt.Errorf("failed to open segment memory: %w", err)
		}
		defer mem.Close()
	}

	orch := orchestrator.New(svc, client, memOrNil(mem), det, orchestrator.Config{
		TargetLang: targetLang,
		Private:    usePrivate,
		Gist:       useGist,
		Tweet:      useTweet,
		Progress:   os.Stderr,
	})

	selected := candidates
	if !autoMode {
		selected, err = pickCandidates(os.Stdin, os.Stdout, candidates)
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println("Nothing selected; exiting.")
			return nil
		}
	}

	for i, cand := range selected {
		fmt.Fprintf(os.Stderr, "[%d/%d] (%s) translating: %s\n",
			i+1, len(selected), cand.Status, cand.Article.Title)

		item, err := orch.Run(ctx, cand)
		if err != nil {
			return err
		}

		if mem != nil {
			_ = mem.LogPublication(ctx, cand.Article.ID, cand.Status.String(), cand.Article.Title, item.Title)
		}
		fmt.Printf("(UPLOADED)\t%s\n", item.Title)
	}

	printSummary(ctx, mem, len(selected))
	return nil
}

// memOrNil keeps a typed-nil *store.Store out of the Memory interface.
func memOrNil(mem *store.Store) orchestrator.Memory {
	if mem == nil {
		return nil
	}
	return mem
}

func printSummary(ctx context.Context, mem *store.Store, published int) {
	fmt.Printf("\ntransqiita finished: %d article(s) published.\n", published)
	if mem == nil {
		return
	}
	if stats, err := mem.Stats(ctx); err == nil && stats.Hits > 0 {
		fmt.Printf("Segment memory saved %d duplicate translation request(s).\n", stats.Hits)
	}
}
