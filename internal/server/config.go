package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/basecamp/visit-recorder/internal/store"
)

const (
	DefaultBind                = "0.0.0.0"
	DefaultHttpPort            = 80
	DefaultRedisHost           = "redis"
	DefaultRedisPort           = 6379
	DefaultListKey             = "times"
	DefaultAudienceFile        = "/run/secrets/audience"
	DefaultHealthCheckInterval = 5 * time.Second
	DefaultHealthCheckTimeout  = 2 * time.Second
)

var (
	ErrorUnknownRenderMode      = errors.New("unknown render mode")
	ErrorUnknownTimestampFormat = errors.New("unknown timestamp format")
	ErrorUnknownStore           = errors.New("unknown store")
	ErrorUnknownVariant         = errors.New("unknown variant")
)

type RenderMode string

const (
	RenderHTML RenderMode = "html"
	RenderText RenderMode = "text"
)

type TimestampFormat string

const (
	TimestampClock TimestampFormat = "clock"
	TimestampISO   TimestampFormat = "iso"
)

func (f TimestampFormat) Layout() string {
	switch f {
	case TimestampISO:
		return "2006-01-02T15:04:05-0700"
	default:
		return "15:04:05"
	}
}

func (f TimestampFormat) Format(t time.Time) string {
	return t.Format(f.Layout())
}

type StoreKind string

const (
	StoreRedis  StoreKind = "redis"
	StoreMemory StoreKind = "memory"
)

type Config struct {
	Bind        string
	HttpPort    int
	MetricsPort int
	Debug       bool

	Store         StoreKind
	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	ListKey       string
	Atomic        bool

	Render          RenderMode
	TimestampFormat TimestampFormat
	FutureEnabled   bool
	AudienceEnabled bool
	AudienceFile    string

	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}

func (c Config) Validate() error {
	switch c.Render {
	case RenderHTML, RenderText:
	default:
		return fmt.Errorf("%w: %q", ErrorUnknownRenderMode, c.Render)
	}

	switch c.TimestampFormat {
	case TimestampClock, TimestampISO:
	default:
		return fmt.Errorf("%w: %q", ErrorUnknownTimestampFormat, c.TimestampFormat)
	}

	switch c.Store {
	case StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrorUnknownStore, c.Store)
	}

	return nil
}

func (c Config) RedisOptions() store.RedisOptions {
	return store.RedisOptions{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Key:      c.ListKey,
	}
}

func (c Config) OpenStore() (store.VisitLog, error) {
	switch c.Store {
	case StoreRedis:
		return store.NewRedisStore(c.RedisOptions()), nil
	case StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrorUnknownStore, c.Store)
	}
}

// Variant is a named preset covering the three ways the recorder is deployed.
type Variant struct {
	Render          RenderMode
	TimestampFormat TimestampFormat
	FutureEnabled   bool
	AudienceEnabled bool
	Debug           bool
}

var Variants = map[string]Variant{
	"home":     {Render: RenderHTML, TimestampFormat: TimestampClock, FutureEnabled: true, Debug: true},
	"plain":    {Render: RenderText, TimestampFormat: TimestampISO, Debug: true},
	"audience": {Render: RenderHTML, TimestampFormat: TimestampClock, AudienceEnabled: true},
}

func LookupVariant(name string) (Variant, error) {
	variant, ok := Variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q", ErrorUnknownVariant, name)
	}
	return variant, nil
}
