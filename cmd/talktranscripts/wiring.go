package main

import (
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"talk-transcripts/pkg/config"
	"talk-transcripts/pkg/content"
	"talk-transcripts/pkg/fetcher"
	"talk-transcripts/pkg/httpclient"
	"talk-transcripts/pkg/pipeline"
	"talk-transcripts/pkg/store"
)

// bindFlag binds a flag to a config key; a flag that was not set leaves
// the config file, environment or default in charge
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		log.Fatalf("bind flag %s: %v", flag.Name, err)
	}
}

func newHTTPClient(c *config.Config) *httpclient.HTTPClient {
	return httpclient.NewClient(httpclient.ClientType(c.HTTP.ClientType),
		httpclient.WithTimeout(c.HTTP.Timeout),
		httpclient.WithUserAgent(c.HTTP.UserAgent),
	)
}

// newFetcher stacks the optional robots and retry policies on a plain HTTP fetcher
func newFetcher(c *config.Config, client *httpclient.HTTPClient) fetcher.Fetcher {
	var f fetcher.Fetcher = fetcher.NewHTTPFetcher(client)
	if c.HTTP.RespectRobots {
		f = fetcher.NewRobotsFetcher(f, client)
	}
	if c.HTTP.MaxAttempts > 1 {
		f = fetcher.NewRetryFetcher(f, c.HTTP.MaxAttempts, c.HTTP.Backoff)
	}
	return f
}

func newStore(c *config.Config) *store.Store {
	return store.New(c.RawFile, c.TranscriptFile)
}

func crawlOptions(c *config.Config) pipeline.Options {
	return pipeline.Options{
		Language:     c.Language,
		MaxLinkPages: c.MaxLinkPages,
		MaxWebpages:  c.MaxWebpages,
		Delay:        c.Delay,
	}
}

func newCrawler(c *config.Config) (*pipeline.Crawler, error) {
	profile := c.Profile()
	extractor, err := content.NewTranscriptExtractor(profile)
	if err != nil {
		return nil, err
	}
	f := newFetcher(c, newHTTPClient(c))
	return pipeline.NewCrawler(f, extractor, newStore(c), profile, crawlOptions(c)), nil
}
