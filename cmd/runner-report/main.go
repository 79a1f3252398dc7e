package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"runner-dashboard/internal/model"
	"runner-dashboard/internal/pipeline"
	"runner-dashboard/pkg/utils"
)

func main() {
	person := flag.String("person", "", "runner to show in detail (default: first runner alphabetically)")
	maxErrors := flag.Int("max-errors", pipeline.DefaultDisplayErrors, "number of validation errors to print")
	logLevel := flag.String("log-level", "info", "log level (info or debug)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file.csv>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)
	logger := utils.NewLogger(*logLevel)

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Failed to open %s: %v", path, err)
		os.Exit(1)
	}

	processor := pipeline.NewProcessor(nil, nil, logger)
	outcome, err := processor.Process(context.Background(), filepath.Base(path), f)
	f.Close()
	if err != nil {
		logger.Error("Failed to process %s: %v", path, err)
		os.Exit(1)
	}

	if !outcome.Result.IsValid {
		printErrors(outcome.Result.Errors, *maxErrors)
		os.Exit(1)
	}

	printDashboard(*outcome.Dashboard)
	printPerson(pipeline.BuildPersonView(outcome.Result.Data, *person))
}

func printErrors(errs []model.ValidationError, limit int) {
	if len(errs) == 0 {
		fmt.Printf("\n\033[1;31m  CSV file contains no data rows\033[0m\n\n")
		return
	}
	fmt.Printf("\n\033[1;31m  %s\033[0m\n", pipeline.ErrorHeadline(len(errs)))
	for _, line := range pipeline.DisplayErrors(errs, limit) {
		fmt.Printf("  • %s\n", line)
	}
	fmt.Println()
}

func printDashboard(d model.Dashboard) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏃 RUNNER DASHBOARD  %s\033[0m\n", d.FileName)
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	o := d.Overall
	fmt.Printf("\033[1;33m  Overall\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total miles    : \033[1m%.2f\033[0m\n", o.TotalMiles)
	fmt.Printf("  Average miles  : \033[1m%.2f\033[0m\n", o.AverageMiles)
	fmt.Printf("  Min / Max      : \033[1m%.2f / %.2f\033[0m\n", o.MinMiles, o.MaxMiles)
	fmt.Printf("  Runs / Runners : \033[1m%d / %d\033[0m\n", o.TotalRuns, o.UniqueRunners)
	fmt.Println()

	fmt.Printf("\033[1;33m  Runners by Total Miles\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for i, p := range d.People {
		fmt.Printf("  \033[1m%d.\033[0m %-24s \033[1;32m%8.2f\033[0m  avg %.2f  (%d runs)\n",
			i+1, truncate(p.Person, 24), p.TotalMiles, p.AverageMiles, p.RunCount)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Miles by Date\033[0m\n")
	fmt.Printf("  %s\n", thin)
	peak := 0.0
	for _, p := range d.MilesByDate {
		peak = max(peak, p.Miles)
	}
	for _, p := range d.MilesByDate {
		fmt.Printf("  %-12s %s %.2f\n", p.Date, bar(p.Miles, peak), p.Miles)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Share of Miles\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, p := range d.MilesByPerson {
		fmt.Printf("  %-24s %5.1f%%\n", truncate(p.Person, 24), p.Share)
	}
	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func printPerson(v model.PersonView) {
	thin := strings.Repeat("─", 54)
	if v.Metric == nil {
		fmt.Printf("  No runs found for %q\n\n", v.Person)
		return
	}

	fmt.Printf("\033[1;33m  %s\033[0m\n", v.Person)
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total %.2f | Avg %.2f | Min %.2f | Max %.2f | Runs %d\n",
		v.Metric.TotalMiles, v.Metric.AverageMiles, v.Metric.MinMiles, v.Metric.MaxMiles, v.Metric.RunCount)
	for _, p := range v.MilesByDate {
		fmt.Printf("  %-12s %s %.2f\n", p.Date, bar(p.Miles, v.Metric.MaxMiles), p.Miles)
	}
	fmt.Println()
}

// bar scales value against peak into at most 30 blocks
func bar(value, peak float64) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	n := int(value / peak * 30)
	if n < 1 {
		n = 1
	}
	if n > 30 {
		n = 30
	}
	return strings.Repeat("█", n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
