package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"talk-transcripts/pkg/httpclient"
	"talk-transcripts/pkg/sites"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. TALK_TRANSCRIPTS_HTTP_TIMEOUT
	EnvPrefix = "TALK_TRANSCRIPTS"

	// FileName is the config file looked up in . and ~/.config/talktranscripts
	FileName = "talktranscripts"
)

// Site overrides the markup constants of the site profile
type Site struct {
	BaseURL           string `mapstructure:"base_url" yaml:"base_url"`
	ListingPath       string `mapstructure:"listing_path" yaml:"listing_path"`
	LinkBaseURL       string `mapstructure:"link_base_url" yaml:"link_base_url"`
	TalkPathPrefix    string `mapstructure:"talk_path_prefix" yaml:"talk_path_prefix"`
	EntrySelector     string `mapstructure:"entry_selector" yaml:"entry_selector"`
	LinkSelector      string `mapstructure:"link_selector" yaml:"link_selector"`
	TranscriptMarker  string `mapstructure:"transcript_marker" yaml:"transcript_marker"`
	ParagraphSelector string `mapstructure:"paragraph_selector" yaml:"paragraph_selector"`
	FeedURL           string `mapstructure:"feed_url" yaml:"feed_url"`
	SitemapURL        string `mapstructure:"sitemap_url" yaml:"sitemap_url"`
}

type HTTP struct {
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ClientType    string        `mapstructure:"client_type" yaml:"client_type"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	MaxAttempts   int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Backoff       time.Duration `mapstructure:"backoff" yaml:"backoff"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
}

type Mongo struct {
	URI        string `mapstructure:"uri" yaml:"uri"`
	Database   string `mapstructure:"database" yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

type Postgres struct {
	DSN string `mapstructure:"dsn" yaml:"dsn"`
}

type Supabase struct {
	URL              string `mapstructure:"url" yaml:"url"`
	Key              string `mapstructure:"key" yaml:"key"`
	Password         string `mapstructure:"password" yaml:"password"`
	ConnectionString string `mapstructure:"connection_string" yaml:"connection_string"`
}

// Config is the resolved configuration of a run
type Config struct {
	Language       string        `mapstructure:"language" yaml:"language"`
	RawFile        string        `mapstructure:"raw_file" yaml:"raw_file"`
	TranscriptFile string        `mapstructure:"transcript_file" yaml:"transcript_file"`
	MaxLinkPages   int           `mapstructure:"max_link_pages" yaml:"max_link_pages"`
	MaxWebpages    int           `mapstructure:"max_webpages" yaml:"max_webpages"`
	Delay          time.Duration `mapstructure:"delay" yaml:"delay"`
	Resume         bool          `mapstructure:"resume" yaml:"resume"`

	Site     Site     `mapstructure:"site" yaml:"site"`
	HTTP     HTTP     `mapstructure:"http" yaml:"http"`
	Mongo    Mongo    `mapstructure:"mongo" yaml:"mongo"`
	Postgres Postgres `mapstructure:"postgres" yaml:"postgres"`
	Supabase Supabase `mapstructure:"supabase" yaml:"supabase"`
}

// SetDefaults registers every key with its default. Keys must be known to
// viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	ted := sites.TED()

	v.SetDefault("language", "en")
	v.SetDefault("raw_file", "ted_raw.json")
	v.SetDefault("transcript_file", "ted_transcripts.json")
	v.SetDefault("max_link_pages", 200)
	v.SetDefault("max_webpages", 0)
	v.SetDefault("delay", 10*time.Second)
	v.SetDefault("resume", false)

	v.SetDefault("site.base_url", ted.BaseURL)
	v.SetDefault("site.listing_path", ted.ListingPath)
	v.SetDefault("site.link_base_url", ted.LinkBaseURL)
	v.SetDefault("site.talk_path_prefix", ted.TalkPathPrefix)
	v.SetDefault("site.entry_selector", ted.Listing.Entry)
	v.SetDefault("site.link_selector", ted.Listing.Link)
	v.SetDefault("site.transcript_marker", ted.TranscriptMarker)
	v.SetDefault("site.paragraph_selector", ted.ParagraphSelector)
	v.SetDefault("site.feed_url", ted.FeedURL)
	v.SetDefault("site.sitemap_url", ted.SitemapURL)

	v.SetDefault("http.timeout", 60*time.Second)
	v.SetDefault("http.client_type", string(httpclient.BrowserClient))
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.max_attempts", 1)
	v.SetDefault("http.backoff", 5*time.Second)
	v.SetDefault("http.respect_robots", false)

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "talks")
	v.SetDefault("mongo.collection", "transcripts")
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.key", "")
	v.SetDefault("supabase.password", "")
	v.SetDefault("supabase.connection_string", "")
}

// Setup registers defaults and environment overrides on v and reads the
// config file. An explicit cfgFile must exist; the default lookup may find
// nothing. It returns the config file used, if any.
func Setup(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no run can work with
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Language) == "" {
		errs = append(errs, errors.New("language must not be empty"))
	}
	if c.RawFile == "" || c.TranscriptFile == "" {
		errs = append(errs, errors.New("raw_file and transcript_file must be set"))
	}
	if c.MaxLinkPages < 0 {
		errs = append(errs, fmt.Errorf("max_link_pages must be >= 0, got %d", c.MaxLinkPages))
	}
	if c.MaxWebpages < 0 {
		errs = append(errs, fmt.Errorf("max_webpages must be >= 0, got %d", c.MaxWebpages))
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must be >= 0, got %s", c.Delay))
	}
	if c.HTTP.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("http.max_attempts must be >= 1, got %d", c.HTTP.MaxAttempts))
	}
	switch httpclient.ClientType(c.HTTP.ClientType) {
	case httpclient.BrowserClient, httpclient.CloudflareClient, httpclient.DefaultClient:
	default:
		errs = append(errs, fmt.Errorf("http.client_type must be browser, cloudflare or default, got %q", c.HTTP.ClientType))
	}

	return errors.Join(errs...)
}

// Profile returns the site profile with the configured markup constants
func (c *Config) Profile() sites.Profile {
	p := sites.TED()
	p.BaseURL = c.Site.BaseURL
	p.ListingPath = c.Site.ListingPath
	p.LinkBaseURL = c.Site.LinkBaseURL
	p.TalkPathPrefix = c.Site.TalkPathPrefix
	p.Listing = sites.Selectors{Entry: c.Site.EntrySelector, Link: c.Site.LinkSelector}
	p.TranscriptMarker = c.Site.TranscriptMarker
	p.ParagraphSelector = c.Site.ParagraphSelector
	p.FeedURL = c.Site.FeedURL
	p.SitemapURL = c.Site.SitemapURL
	return p
}

// YAML renders the configuration with secrets masked
func (c *Config) YAML() ([]byte, error) {
	masked := *c
	masked.Mongo.URI = mask(masked.Mongo.URI)
	masked.Postgres.DSN = mask(masked.Postgres.DSN)
	masked.Supabase.Key = mask(masked.Supabase.Key)
	masked.Supabase.Password = mask(masked.Supabase.Password)
	masked.Supabase.ConnectionString = mask(masked.Supabase.ConnectionString)

	out, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
