package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DimpleKundu/incubyte-sweet-shop/config"
)

const redisPingTimeout = 5 * time.Second

type redisMode int

const (
	redisDirect redisMode = iota
	redisSentinel
	redisCluster
)

// redisTarget is a resolved Redis deployment: how to reach it and which
// client type talks to it.
type redisTarget struct {
	mode redisMode
	opts redis.UniversalOptions
}

// ConnectRedis dials the configured Redis deployment and checks it answers a PING.
//
//nolint:ireturn // the concrete client depends on REDIS_USE_CLUSTER / REDIS_USE_SENTINEL.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	target, err := resolveRedis(cfg)
	if err != nil {
		return nil, err
	}
	client := target.client()

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("ping redis: %w", err), client.Close())
	}

	if logger != nil {
		logger.InfoContext(ctx, "redis connected", "addr", redactAddr(target.describe()))
	}
	return client, nil
}

func resolveRedis(cfg config.RedisConfig) (redisTarget, error) {
	opts := redis.UniversalOptions{Password: cfg.Password, DB: cfg.DB}

	switch {
	case cfg.UseCluster:
		opts.DB = 0
		if nodes := cleanAddrs(cfg.ClusterNodes); len(nodes) > 0 {
			opts.Addrs = nodes
		} else if uri := strings.TrimSpace(cfg.URI); uri != "" {
			seeded, err := withURI(opts, uri)
			if err != nil {
				return redisTarget{}, fmt.Errorf("redis cluster seed: %w", err)
			}
			opts = seeded
		}
		if len(opts.Addrs) == 0 {
			return redisTarget{}, errors.New("redis cluster needs REDIS_CLUSTER_NODES or REDIS_URI")
		}
		return redisTarget{mode: redisCluster, opts: opts}, nil

	case cfg.UseSentinel:
		opts.Addrs = cleanAddrs(cfg.SentinelNodes)
		if len(opts.Addrs) == 0 {
			return redisTarget{}, errors.New("redis sentinel needs at least one REDIS_SENTINEL_NODES entry")
		}
		opts.MasterName = cfg.SentinelMasterName
		opts.SentinelPassword = cfg.SentinelPassword
		return redisTarget{mode: redisSentinel, opts: opts}, nil

	default:
		uri := strings.TrimSpace(cfg.URI)
		if uri == "" {
			return redisTarget{}, errors.New("redis needs REDIS_URI")
		}
		direct, err := withURI(opts, uri)
		if err != nil {
			return redisTarget{}, err
		}
		return redisTarget{mode: redisDirect, opts: direct}, nil
	}
}

// withURI points opts at uri, which is either host:port or a redis:// or
// rediss:// URL. Credentials in the URL win over the configured password.
func withURI(opts redis.UniversalOptions, uri string) (redis.UniversalOptions, error) {
	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		opts.Addrs = []string{uri}
		return opts, nil
	}
	parsed, err := redis.ParseURL(uri)
	if err != nil {
		return opts, fmt.Errorf("parse redis url: %w", err)
	}
	opts.Addrs = []string{parsed.Addr}
	opts.Username = parsed.Username
	if parsed.Password != "" {
		opts.Password = parsed.Password
	}
	if parsed.DB != 0 {
		opts.DB = parsed.DB
	}
	opts.TLSConfig = parsed.TLSConfig
	return opts, nil
}

//nolint:ireturn // see ConnectRedis.
func (t redisTarget) client() redis.UniversalClient {
	opts := t.opts
	switch t.mode {
	case redisCluster:
		return redis.NewClusterClient(opts.Cluster())
	case redisSentinel:
		return redis.NewFailoverClient(opts.Failover())
	default:
		return redis.NewClient(opts.Simple())
	}
}

func (t redisTarget) describe() string {
	switch t.mode {
	case redisCluster:
		return "cluster:" + strings.Join(t.opts.Addrs, ",")
	case redisSentinel:
		return "sentinel:" + t.opts.MasterName
	default:
		return t.opts.Addrs[0]
	}
}

// redactAddr hides credentials in a connection description before logging.
func redactAddr(desc string) string {
	if u, err := url.Parse(desc); err == nil && u.User != nil {
		// url.User would escape the mask as %2A.
		u.User = nil
		return u.Scheme + "://*@" + strings.TrimPrefix(u.String(), u.Scheme+"://")
	}
	if i := strings.LastIndex(desc, "@"); i >= 0 {
		return desc[i+1:]
	}
	return desc
}

func cleanAddrs(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
