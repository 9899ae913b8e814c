package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"whiskplan/internal/analyzer"
	"whiskplan/internal/clipper"
	"whiskplan/internal/config"
	"whiskplan/internal/domain"
	"whiskplan/internal/logger"
	"whiskplan/internal/plan"
	"whiskplan/internal/prefs"
	"whiskplan/internal/recipes"
	"whiskplan/internal/storage"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr)

	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	recipeStore := recipes.NewStore(db, appLog)
	prefStore := prefs.NewStoreWithDefaults(db, appLog, domain.BudgetSettings{
		WeeklyBudget:    cfg.WeeklyBudget,
		PricePerServing: cfg.PricePerServing,
		Currency:        cfg.Currency,
	})
	engine := plan.NewEngine(recipeStore, db, appLog)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "clip":
		clipCmd := flag.NewFlagSet("clip", flag.ExitOnError)
		clipCmd.Parse(os.Args[2:])
		if clipCmd.NArg() < 1 {
			log.Fatal("clip requires a URL argument")
		}
		rec, err := clipper.New().ClipURL(context.Background(), clipCmd.Arg(0))
		if err != nil {
			log.Fatalf("Clip failed: %v", err)
		}
		recipeStore.Add(rec)
		fmt.Printf("Imported %q (%d ingredients) as %s\n", rec.Title, len(rec.Ingredients), rec.ID)

	case "recipes":
		for _, rec := range recipeStore.Search("") {
			marker := " "
			if recipeStore.IsFavorite(rec.ID) {
				marker = "*"
			}
			fmt.Printf("%s %-36s  %s\n", marker, rec.ID, rec.Title)
		}

	case "new-week":
		newCmd := flag.NewFlagSet("new-week", flag.ExitOnError)
		date := newCmd.String("date", "", "Any date within the target week (YYYY-MM-DD)")
		title := newCmd.String("title", "", "Plan title")
		newCmd.Parse(os.Args[2:])
		if *date == "" {
			log.Fatal("new-week requires -date")
		}
		id := engine.CreateWeekPlan(*date, *title)
		created, _ := engine.WeekPlan(id)
		fmt.Printf("Created plan %s (%s to %s)\n", id, created.StartDate, created.EndDate)

	case "add":
		addCmd := flag.NewFlagSet("add", flag.ExitOnError)
		planID := addCmd.String("plan", "", "Week plan id (defaults to the current plan)")
		date := addCmd.String("date", "", "Date (YYYY-MM-DD)")
		meal := addCmd.String("meal", "dinner", "Meal type: breakfast, lunch, dinner or snacks")
		recipeID := addCmd.String("recipe", "", "Recipe id")
		servings := addCmd.Int("servings", 0, "Servings override (0 uses the recipe's count)")
		addCmd.Parse(os.Args[2:])

		if *planID == "" {
			current, ok := engine.CurrentWeekPlan()
			if !ok {
				log.Fatal("no current plan; pass -plan or run new-week first")
			}
			*planID = current.ID
		}
		engine.AddMealToSlot(*planID, *date, domain.MealType(*meal), *recipeID, *servings)
		fmt.Printf("Added recipe %s to %s %s\n", *recipeID, *date, *meal)

	case "shopping":
		shopCmd := flag.NewFlagSet("shopping", flag.ExitOnError)
		planID := shopCmd.String("plan", "", "Week plan id (defaults to the current plan)")
		shopCmd.Parse(os.Args[2:])
		if *planID == "" {
			current, ok := engine.CurrentWeekPlan()
			if !ok {
				log.Fatal("no current plan; pass -plan or run new-week first")
			}
			*planID = current.ID
		}
		listID := engine.GenerateShoppingList(*planID)
		if listID == "" {
			log.Fatalf("Plan %s not found", *planID)
		}
		list, _ := engine.ShoppingList(listID)
		for _, item := range list.Items {
			fmt.Printf("%-15s %6.2f %-6s %s\n", item.Category, item.Amount, item.Unit, item.Name)
		}

	case "budget":
		all := recipeStore.Search("")
		analysis := analyzer.AnalyzeBudget(all, prefStore.Budget())
		fmt.Printf("Status: %s (%.0f%% of budget)\n", analysis.Status, analysis.BudgetUtilization)
		fmt.Printf("Average per serving: $%.2f, weekly projection: $%.2f\n",
			analysis.AverageCostPerServing, analysis.WeeklyProjection)
		for _, rec := range analysis.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: whiskplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  clip <url>    Import a recipe from a web page")
	fmt.Println("  recipes       List the recipe catalog")
	fmt.Println("  new-week      Create a week plan (-date, -title)")
	fmt.Println("  add           Add a meal to a slot (-plan, -date, -meal, -recipe, -servings)")
	fmt.Println("  shopping      Generate and print a shopping list (-plan)")
	fmt.Println("  budget        Analyze catalog costs against budget settings")
}
