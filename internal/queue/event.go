// Package queue defines the catalog change events exchanged over RabbitMQ,
// the publisher used by the HTTP handlers and the consumer that appends each
// event to an audit log.
package queue

import (
	"fmt"
	"strings"
	"time"
)

// CatalogQueue is the durable queue every catalog change is published to.
const CatalogQueue = "sakila.catalog.changed"

// Entities and actions carried by CatalogEvent.
const (
	EntityActor = "actor"
	EntityCity  = "city"
	EntityFilm  = "film"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogEvent is published after a create, update or delete has been
// committed.  It carries enough for an audit trail without re-querying the
// database.
type CatalogEvent struct {
	Entity     string  `json:"entity"`
	Action     string  `json:"action"`
	ID         int64   `json:"id"`
	Summary    string  `json:"summary"`
	ActorIDs   []int64 `json:"actor_ids,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(entity, action string, id int64, summary string) CatalogEvent {
	return CatalogEvent{
		Entity:     entity,
		Action:     action,
		ID:         id,
		Summary:    summary,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// AuditLine formats the event as one human-readable log line.
func (ev CatalogEvent) AuditLine() string {
	line := fmt.Sprintf("[%s] %s %s | id=%d | %q", ev.OccurredAt, ev.Entity, ev.Action, ev.ID, ev.Summary)
	if len(ev.ActorIDs) > 0 {
		ids := make([]string, 0, len(ev.ActorIDs))
		for _, id := range ev.ActorIDs {
			ids = append(ids, fmt.Sprint(id))
		}
		line += " | actors=[" + strings.Join(ids, ",") + "]"
	}
	return line + "\n"
}
