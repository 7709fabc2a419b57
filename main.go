package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"talk-transcripts/pkg/sites"
	"talk-transcripts/pkg/urls"
)

func main() {
	feedURL := sites.TED().FeedURL

	if len(os.Args) > 1 {
		feedURL = os.Args[1]
	}

	fetcher := urls.NewFeedFetcher("")

	talks, err := fetcher.Fetch(context.Background(), feedURL)
	if err != nil {
		log.Fatalf("Failed to read feed: %v", err)
	}

	// Print first 10 talks
	maxTalks := 10
	if len(talks) < maxTalks {
		maxTalks = len(talks)
	}

	fmt.Printf("Found %d talks. Showing first %d:\n\n", len(talks), maxTalks)

	for i := 0; i < maxTalks; i++ {
		talk := talks[i]
		fmt.Printf("Talk %d:\n", i+1)
		if talk.Title != "" {
			fmt.Printf("  Title: %s\n", talk.Title)
		}
		fmt.Printf("  URL: %s\n", talk.Location)
		fmt.Printf("  Transcript: %s\n", urls.TranscriptURL(talk.Location, "en"))
		fmt.Println()
	}
}
