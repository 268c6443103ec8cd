package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/mindgrid/pkg/app"
	"tableflip.dev/mindgrid/pkg/printers"
	"tableflip.dev/mindgrid/pkg/state"
	"tableflip.dev/mindgrid/pkg/store"
)

// newLogger is quiet unless --verbose is set.
func newLogger() *zap.Logger {
	if !ro.Verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// newService opens the configured store. With --memory it starts empty and
// nothing is written.
func newService(ctx context.Context) (*app.Service, error) {
	log := newLogger()
	if ro.Memory {
		return app.NewService(store.New(state.Initial(), store.WithLogger(log)), log), nil
	}

	var cfg store.Config
	if ro.Path != "" {
		cfg = store.PathConfig(ro.Path)
	}
	p, err := store.Load(cfg, log)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, p, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return app.NewService(st, log), nil
}

// emit writes v as JSON when --json is set, otherwise calls pretty.
func emit(v any, pretty func()) error {
	if oo.JSON {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	pretty()
	return nil
}

func printer(showID bool) *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: showID}
}

// watchAndReload reloads svc whenever another process writes the store. It
// returns when ctx is done or the store is in memory only.
func watchAndReload(ctx context.Context, svc *app.Service) {
	if ctx == nil || svc.Store == nil || !svc.Store.Persistent() {
		return
	}
	events, err := svc.Watch(ctx)
	if err != nil {
		svc.Log.Warn("watch store", zap.Error(err))
		return
	}
	for ev := range events {
		svc.Log.Debug("store changed", zap.Strings("kinds", ev.Kinds), zap.Bool("all", ev.All))
		if _, err := svc.Reload(ctx); err != nil {
			svc.Log.Warn("reload store", zap.Error(err))
		}
	}
}
