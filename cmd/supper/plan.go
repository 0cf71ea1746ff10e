package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/dukerupert/supper/internal/model"
	"github.com/dukerupert/supper/internal/planner"
	"github.com/dukerupert/supper/internal/recommend"
	"github.com/dukerupert/supper/internal/store"
)

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Generate a dinner plan from the stored recipes and print it as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "Anchor date (YYYY-MM-DD); defaults to today",
			},
			&cli.StringFlag{
				Name:  "unit",
				Usage: "Plan length unit: week or month",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of weeks or months",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Seed for a reproducible plan",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Store the plan and make it current",
			},
		},
		Action: plan,
	}
}

func plan(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.db.Close()

	prefs := e.cfg.Planner.Defaults
	if u := cmd.String("unit"); u != "" {
		prefs.DurationUnit = model.DurationUnit(u)
	}
	if n := cmd.Int("count"); n != 0 {
		prefs.DurationCount = int(n)
	}
	if err := prefs.Validate(); err != nil {
		return fmt.Errorf("invalid plan options: %w", err)
	}

	anchor := time.Now()
	if s := cmd.String("start"); s != "" {
		anchor, err = time.Parse("2006-01-02", s)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", s, err)
		}
	}

	var opts []planner.Option
	if cmd.IsSet("seed") {
		opts = append(opts, planner.WithSeed(uint64(cmd.Int("seed"))))
	}

	recipes, err := store.NewRecipeStore(e.db).List()
	if err != nil {
		return err
	}
	if len(recipes) == 0 {
		e.logger.Warn("recipe library is empty, meal days will have no recipe")
	}

	p := planner.New(opts...).Generate(recipes, anchor, prefs)

	if cmd.Bool("save") {
		plans := store.NewPlanStore(e.db)
		if err := plans.Save(p); err != nil {
			return err
		}
		if _, err := plans.SetCurrent(p.ID); err != nil {
			return err
		}
		e.logger.Info("plan saved", "id", p.ID)
	}
	return printJSON(p)
}

func recommendCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Rank the stored recipes against the pantry and print them as JSON",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Print at most this many recipes (0 for all)",
			},
		},
		Action: recommendRecipes,
	}
}

func recommendRecipes(ctx context.Context, cmd *cli.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.db.Close()

	recipes, err := store.NewRecipeStore(e.db).List()
	if err != nil {
		return err
	}
	items, err := store.NewPantryStore(e.db).List()
	if err != nil {
		return err
	}

	ranked := recommend.RankWithThreshold(recipes, items, time.Now(), e.cfg.Planner.FuzzyThreshold)
	if n := int(cmd.Int("limit")); n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return printJSON(ranked)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
