package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/temoto/robotstxt"

	"talk-transcripts/pkg/httpclient"
)

// RobotsFetcher refuses URLs that the host's robots.txt disallows for our
// user agent. robots.txt is loaded once per host; a host whose robots.txt
// cannot be loaded is treated as allowing everything.
type RobotsFetcher struct {
	next   Fetcher
	client *httpclient.HTTPClient
	agent  string
	groups map[string]*robotstxt.Group
}

// NewRobotsFetcher wraps next; client is used to download robots.txt
func NewRobotsFetcher(next Fetcher, client *httpclient.HTTPClient) *RobotsFetcher {
	agent := client.UserAgent()
	if agent == "" {
		agent = "*"
	}
	return &RobotsFetcher{
		next:   next,
		client: client,
		agent:  agent,
		groups: make(map[string]*robotstxt.Group),
	}
}

// Fetch checks robots.txt before delegating
func (f *RobotsFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("invalid URL: %q", rawURL)}
	}

	group := f.group(ctx, u)
	if group != nil && !group.Test(u.Path) {
		return nil, &FetchError{URL: rawURL, Err: ErrDisallowed}
	}

	return f.next.Fetch(ctx, rawURL)
}

func (f *RobotsFetcher) group(ctx context.Context, u *url.URL) *robotstxt.Group {
	key := u.Scheme + "://" + u.Host
	if g, ok := f.groups[key]; ok {
		return g
	}

	robotsURL := key + "/robots.txt"
	log.Printf("RobotsFetcher: loading %s", robotsURL)

	var group *robotstxt.Group
	resp, err := f.client.Get(ctx, robotsURL)
	if err != nil {
		log.Printf("RobotsFetcher: failed to load %s (ignored): %v", robotsURL, err)
	} else {
		data, err := robotstxt.FromResponse(resp)
		drainAndClose(resp.Body)
		if err != nil {
			log.Printf("RobotsFetcher: failed to parse %s (ignored): %v", robotsURL, err)
		} else {
			group = data.FindGroup(f.agent)
		}
	}

	f.groups[key] = group
	return group
}
