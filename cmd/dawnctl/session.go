package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/dawnpage/internal/app"
	"github.com/MrSnakeDoc/dawnpage/internal/config"
	"github.com/MrSnakeDoc/dawnpage/internal/logger"
	"github.com/MrSnakeDoc/dawnpage/internal/schema"
	"github.com/MrSnakeDoc/dawnpage/internal/session"
	"github.com/MrSnakeDoc/dawnpage/internal/store"
)

// openStorage opens the configured storage behind a session that is not
// initialized: reads fall back to the default document and nothing is
// written until Init. The returned func releases the storage.
func openStorage(ctx context.Context) (*session.Session, func(), error) {
	cfg := config.Load()
	log := logger.New("warn", cfg.PrettyLog)

	storage, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return session.New(store.New(storage.Backend, log), log), func() {
		_ = storage.Close()
		_ = log.Sync()
	}, nil
}

// openOfflineSession is openStorage plus Init, for writes while the server
// is stopped.
func openOfflineSession(ctx context.Context) (*session.Session, func(), error) {
	sess, closeFn, err := openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	sess.Init(ctx)
	return sess, closeFn, nil
}

// printIssues lists validation issues one per line. Other errors are
// returned unchanged.
func printIssues(w io.Writer, err error) error {
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, is := range verr.Issues {
		if is.Path == "" {
			fmt.Fprintf(w, "  - %s\n", is.Message)
			continue
		}
		fmt.Fprintf(w, "  - %s: %s\n", is.Path, is.Message)
	}
	return fmt.Errorf("configuration has %d issue(s)", len(verr.Issues))
}
