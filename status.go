package records

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusHandler reports the health of the application as JSON.
// If the database is configured but not reachable, it answers with 500.
func (c *Container) StatusHandler(w http.ResponseWriter, r *http.Request) {
	status := c.systemStatus(r)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	if status.Database != nil && status.Database.Status != "online" {
		w.WriteHeader(http.StatusInternalServerError)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	_ = json.NewEncoder(w).Encode(status)
}

type systemStatus struct {
	Status          string      `json:"status"`
	Time            time.Time   `json:"time"`
	Uptime          string      `json:"uptime"`
	GitHash         string      `json:"gitHash"`
	ApplicationName string      `json:"applicationName"`
	InstanceName    string      `json:"instanceName"`
	Environment     Environment `json:"environment"`
	Store           Store       `json:"store"`
	Web             HTTP        `json:"web"`
	Database        *dbStatus   `json:"database,omitempty"`
}

type dbStatus struct {
	Postgres

	Status string `json:"status"`
}

func (c *Container) systemStatus(r *http.Request) systemStatus {
	status := systemStatus{
		Status:          "online",
		Time:            time.Now(),
		Uptime:          time.Since(c.startedAt).Round(time.Second).String(),
		GitHash:         gitHash(),
		ApplicationName: c.Config.ApplicationName,
		InstanceName:    c.Config.InstanceName,
		Environment:     c.Config.Environment,
		Store:           c.Config.Store,
		Web:             c.Config.HTTP,
		Database:        nil,
	}

	if c.PG != nil {
		db := &dbStatus{Postgres: c.Config.Postgres, Status: "online"}

		if err := c.PG.PGx.Ping(r.Context()); err != nil {
			db.Status = "err: " + err.Error()
			status.Status = "degraded"
		}

		status.Database = db
	}

	return status
}
