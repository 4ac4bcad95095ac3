package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/gotask/internal/identity"
	"github.com/shandysiswandi/gotask/internal/task"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		dep := identity.Dependency{
			DBConn:     a.dbConn,
			Router:     a.router,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Validator:  a.validator,
			Password:   a.password,
			Digest:     a.digest,
			Codec:      a.codec,
			Clock:      a.clock,
		}
		if a.cacheConn != nil {
			dep.CacheConn = a.cacheConn
		}

		if err := identity.New(dep); err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.task.enabled") {
		if err := task.New(task.Dependency{
			Ctx:         a.ctx,
			Idempotency: a.idemp,
			DBConn:      a.dbConn,
			Router:      a.router,
			Messaging:   a.messaging,
			Goroutine:   a.goroutine,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			UUID:        a.uuid,
			Validator:   a.validator,
			Clock:       a.clock,
		}); err != nil {
			slog.Error("failed to init module task", "error", err)
			os.Exit(1)
		}
	}
}
