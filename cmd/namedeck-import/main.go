// Command namedeck-import loads a legacy tab-delimited review sheet
// into the swipe store. The first line is a header naming the
// reviewer columns; each following line carries a candidate name and
// one verdict cell per reviewer (Y = like, N = dislike, M = maybe).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/namedeck/namedeck/internal/adapters/repository"
	"github.com/namedeck/namedeck/internal/domain/model"
	"github.com/namedeck/namedeck/pkg/logger"
)

var (
	filePath string
	dbPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "namedeck-import",
		Short: "Import a legacy tab-delimited name sheet into namedeck",
		RunE:  runImport,
	}
	rootCmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the tab-delimited sheet (required)")
	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "namedeck.db", "path to the sqlite database")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	if err := logger.Init(); err != nil {
		return err
	}
	log := logger.Get()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := repository.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()

	stats, err := importSheet(ctx, store, bufio.NewScanner(f))
	if err != nil {
		return err
	}

	log.Info(ctx, "import finished",
		logger.Int("candidates_created", stats.candidatesCreated),
		logger.Int("swipes_recorded", stats.swipesRecorded),
		logger.Int("rows_skipped", stats.rowsSkipped),
	)
	return nil
}

type importStats struct {
	candidatesCreated int
	swipesRecorded    int
	rowsSkipped       int
}

// importSheet walks the sheet row by row. Rows that cannot be parsed
// are skipped rather than aborting the run, and a (reviewer,
// candidate) pair that already has a swipe on record keeps its
// existing history untouched.
func importSheet(ctx context.Context, store repository.Store, sc *bufio.Scanner) (importStats, error) {
	var stats importStats

	if !sc.Scan() {
		return stats, errors.New("sheet is empty")
	}
	header := strings.Split(sc.Text(), "\t")
	if len(header) < 2 {
		return stats, errors.New("header must name at least one reviewer column")
	}

	reviewers := make([]model.Reviewer, 0, len(header)-1)
	for _, name := range header[1:] {
		rv, err := resolveReviewer(ctx, store, strings.TrimSpace(name))
		if err != nil {
			return stats, err
		}
		reviewers = append(reviewers, rv)
	}

	for sc.Scan() {
		row := strings.Split(sc.Text(), "\t")
		name := strings.TrimSpace(row[0])
		if name == "" {
			stats.rowsSkipped++
			continue
		}

		cand, created, err := resolveCandidate(ctx, store, name)
		if err != nil {
			return stats, fmt.Errorf("candidate %q: %w", name, err)
		}
		if created {
			stats.candidatesCreated++
		}

		for i, rv := range reviewers {
			if i+1 >= len(row) {
				break
			}
			decision, ok := parseVerdict(row[i+1])
			if !ok {
				continue
			}
			have, err := store.HasSwipe(ctx, rv.ID, cand.ID)
			if err != nil {
				return stats, err
			}
			if have {
				continue
			}
			_, err = store.AppendSwipe(ctx, model.SwipeEvent{
				ReviewerID:  rv.ID,
				CandidateID: cand.ID,
				Decision:    decision,
				TS:          time.Now().UTC(),
			})
			if err != nil {
				return stats, err
			}
			stats.swipesRecorded++
		}
	}
	if err := sc.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

func resolveReviewer(ctx context.Context, store repository.Store, name string) (model.Reviewer, error) {
	if name == "" {
		return model.Reviewer{}, errors.New("empty reviewer column in header")
	}
	rv, err := store.ReviewerByName(ctx, name)
	if err == nil {
		return rv, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Reviewer{}, err
	}
	return store.AddReviewer(ctx, name)
}

func resolveCandidate(ctx context.Context, store repository.Store, name string) (model.Candidate, bool, error) {
	cand, err := store.CandidateByName(ctx, name)
	if err == nil {
		return cand, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.Candidate{}, false, err
	}
	cand, err = store.AddCandidate(ctx, model.Candidate{Name: name})
	if err != nil {
		return model.Candidate{}, false, err
	}
	return cand, true, nil
}

// parseVerdict maps a legacy cell to a decision. Cells may carry
// trailing commentary ("Y - middle name?"), so the presence of a
// letter wins over an exact match.
func parseVerdict(cell string) (model.Decision, bool) {
	v := strings.ToUpper(strings.TrimSpace(cell))
	switch {
	case v == "":
		return "", false
	case strings.Contains(v, "Y"):
		return model.DecisionLike, true
	case strings.Contains(v, "N"):
		return model.DecisionDislike, true
	case strings.Contains(v, "M"):
		return model.DecisionMaybe, true
	}
	return "", false
}
