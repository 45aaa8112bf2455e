package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"layoutkit/internal/config"
	"layoutkit/internal/ipc"
	"layoutkit/internal/layout"
	"layoutkit/internal/logging"
	"layoutkit/internal/propstore"
)

const lockTimeout = 5 * time.Second

type commandContext struct {
	socketFlag *string
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(socketFlag, configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		socketFlag: socketFlag,
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// remoteSocket returns the socket to use, or "" for the local database.
func (c *commandContext) remoteSocket() string {
	if c.socketFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.socketFlag)
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg := c.configValue()
		if cfg == nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the local database for the duration of fn. When mutate is
// set the store lock is held as well so concurrent layoutctl invocations
// apply their read-compute-write sequences one at a time.
func (c *commandContext) withStore(ctx context.Context, mutate bool, fn func(*propstore.SQLite) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if mutate {
		unlock, err := acquireLock(ctx, cfg.LockPath())
		if err != nil {
			return err
		}
		defer unlock()
	}
	store, err := propstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("open property store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// withEngine runs fn against an engine bound to itemID, either through the
// property server named by --socket or directly on the local database.
// Only local mutations take the data directory lock; remote callers
// serialize their own read-modify-write sequences.
func (c *commandContext) withEngine(ctx context.Context, itemID string, mutate bool, fn func(*layout.Engine) error) error {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return errors.New("item id is required")
	}
	logger := logging.WithContext(logging.WithItemID(ctx, itemID), c.loggerValue())

	if socket := c.remoteSocket(); socket != "" {
		return c.withClient(func(client *ipc.Client) error {
			return fn(layout.New(client.Item(itemID), layout.WithLogger(logger)))
		})
	}

	return c.withStore(ctx, mutate, func(store *propstore.SQLite) error {
		item, err := store.GetItem(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %s: %w", itemID, propstore.ErrNotFound)
		}
		return fn(layout.New(store.Item(itemID), layout.WithLogger(logger)))
	})
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	client, err := c.dialClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) dialClient() (*ipc.Client, error) {
	socket := c.remoteSocket()
	if socket == "" {
		if cfg := c.configValue(); cfg != nil {
			socket = cfg.SocketPath()
		}
	}
	client, err := ipc.Dial(socket)
	if err != nil {
		return nil, wrapDialError(err, socket)
	}
	return client, nil
}

func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || os.IsNotExist(err):
		return fmt.Errorf("connect to property server: socket %s not found; start one with `layoutctl serve`", socket)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to property server: socket %s refused the connection; verify the server is running", socket)
	default:
		return fmt.Errorf("connect to property server: %w", err)
	}
}

func acquireLock(ctx context.Context, path string) (func(), error) {
	lock := flock.New(path)
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()
	ok, err := lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("another layoutctl process holds %s", path)
		}
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another layoutctl process holds %s", path)
	}
	return func() { _ = lock.Unlock() }, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
