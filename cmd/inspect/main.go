// Command inspect loads a season artifact file and prints the index built
// from it: distinct books, duplicate groups, and per-achievement counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/seasonshelf/seasonshelf-server/internal/artifact"
	"github.com/seasonshelf/seasonshelf-server/internal/shelf"
)

func main() {
	dupesOnly := flag.Bool("duplicates", false, "Only print books listed under multiple achievement names")
	search := flag.String("q", "", "Filter books by title/author/achievement substring")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: inspect [-duplicates] [-q query] <artifact.json>\n")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read artifact: %v", err)
	}

	a, err := artifact.Parse(raw)
	if err != nil {
		log.Fatalf("Failed to parse artifact: %v", err)
	}

	idx := shelf.BuildIndex(a)

	fmt.Println("=== Season Artifact Inspection ===")
	fmt.Println()
	fmt.Printf("Season:         %s\n", a.Season.Label())
	fmt.Printf("Generated at:   %s\n", a.GeneratedAt)
	fmt.Printf("Achievements:   %d\n", len(a.Achievements))
	fmt.Printf("Listed books:   %d\n", a.TotalListedBooks())
	fmt.Printf("Distinct books: %d\n", len(idx.Books))
	fmt.Printf("Duplicates:     %d\n", shelf.DuplicateCount(idx.Books))
	fmt.Println()

	fmt.Println("Books per achievement:")
	counts := shelf.AchievementCounts(idx.Books)
	for _, name := range idx.AchievementNames {
		fmt.Printf("  %-40s %d\n", name, counts[name])
	}
	fmt.Println()

	books := shelf.Filter(idx.Books, shelf.FilterState{
		Search:         *search,
		DuplicatesOnly: *dupesOnly,
	})
	books = shelf.Sort(books, shelf.DefaultSortState())

	fmt.Printf("Books (%d):\n", len(books))
	for _, b := range books {
		marker := " "
		if b.IsDuplicate {
			marker = "*"
		}
		fmt.Printf("  %s %s by %s (%d achievements)\n", marker, b.Title, b.Author, len(b.Achievements))
	}
	if shelf.DuplicateCount(books) > 0 {
		fmt.Println()
		fmt.Println("* listed under multiple achievement names")
	}
}
