package handler // handler package contains the actor controllers

import (
	"errors"   // errors.Is matches repository sentinels
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/sakila-admin/internal/model"      // model defines the actor entity
	"github.com/iliyamo/sakila-admin/internal/queue"      // queue names the published events
	"github.com/iliyamo/sakila-admin/internal/repository" // repository defines not-found sentinels
	"github.com/iliyamo/sakila-admin/internal/view"       // view assembles template models
)

// actorForm is the body of POST /actor/create and POST /actor/:actor_id/edit.
type actorForm struct {
	FirstName string `form:"first_name" validate:"required,max=45"` // actor.first_name is VARCHAR(45)
	LastName  string `form:"last_name" validate:"required,max=45"`  // actor.last_name is VARCHAR(45)
}

// ListActors handles GET /actors and renders every actor.
func (h *Handler) ListActors(c echo.Context) error {
	actors, err := h.Actors.List(c.Request().Context()) // read all actors
	if err != nil {                                       // store fault
		return err // surfaced as a 500 by ErrorHandler
	}
	return c.Render(http.StatusOK, "actors", view.NewActorList(actors))
}

// NewActor handles GET /actor/create and renders an empty form.
func (h *Handler) NewActor(c echo.Context) error {
	return c.Render(http.StatusOK, "actor_form", view.NewActorForm(nil))
}

// CreateActor handles POST /actor/create, inserts the actor and redirects to the list.
func (h *Handler) CreateActor(c echo.Context) error {
	var form actorForm
	if err := bindForm(c, &form); err != nil { // bind and validate the names
		return err
	}
	actor := &model.Actor{FirstName: form.FirstName, LastName: form.LastName}
	ctx := c.Request().Context()
	if err := h.Actors.Create(ctx, actor); err != nil { // insert and read back the new id
		return err
	}
	h.publish(ctx, queue.NewEvent(queue.EntityActor, queue.ActionCreated, actor.ID, actor.FullName()))
	return c.Redirect(http.StatusSeeOther, "/actors")
}

// loadActor resolves :actor_id to an actor or a 404.
func (h *Handler) loadActor(c echo.Context) (*model.Actor, error) {
	id, err := parseID(c, "actor_id")
	if err != nil {
		return nil, err
	}
	actor, err := h.Actors.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrActorNotFound) {
		return nil, echo.NewHTTPError(http.StatusNotFound, "actor not found")
	}
	return actor, err
}

// EditActor handles GET /actor/:actor_id/edit and renders the pre-filled form.
func (h *Handler) EditActor(c echo.Context) error {
	actor, err := h.loadActor(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "actor_form", view.NewActorForm(actor))
}

// UpdateActor handles POST /actor/:actor_id/edit.
func (h *Handler) UpdateActor(c echo.Context) error {
	id, err := parseID(c, "actor_id")
	if err != nil {
		return err
	}
	var form actorForm
	if err := bindForm(c, &form); err != nil {
		return err
	}
	actor := model.Actor{ID: id, FirstName: form.FirstName, LastName: form.LastName}
	ctx := c.Request().Context()
	if err := h.Actors.Update(ctx, actor); err != nil {
		return err
	}
	h.publish(ctx, queue.NewEvent(queue.EntityActor, queue.ActionUpdated, id, actor.FullName()))
	return c.Redirect(http.StatusSeeOther, "/actors")
}

// ConfirmDeleteActor handles GET /actor/:actor_id/delete and renders the confirmation.
func (h *Handler) ConfirmDeleteActor(c echo.Context) error {
	actor, err := h.loadActor(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "actor_delete", view.NewActorDelete(*actor))
}

// DeleteActor handles POST /actor/:actor_id/delete.  The actor's film_actor
// rows go first so the foreign keys hold.
func (h *Handler) DeleteActor(c echo.Context) error {
	id, err := parseID(c, "actor_id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Actors.Delete(ctx, id); err != nil {
		return err
	}
	h.publish(ctx, queue.NewEvent(queue.EntityActor, queue.ActionDeleted, id, ""))
	return c.Redirect(http.StatusSeeOther, "/actors")
}
