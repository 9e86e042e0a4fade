package crud

import (
	"net/http"

	"dds/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Register mounts the routes of c on g:
//
//	GET    /                 list
//	GET    /pesquisa?filtro= search
//	GET    /:id              get
//	POST   /                 create
//	PUT    /:id              update
//	DELETE /:id              delete
func Register[C, Q any, E Entity](g *echo.Group, c *Controller[C, Q, E]) {
	h := handlers[C, Q, E]{controller: c}

	g.GET("", h.list)
	g.GET("/", h.list)
	g.GET("/pesquisa", h.search)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.POST("/", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

type handlers[C, Q any, E Entity] struct {
	controller *Controller[C, Q, E]
}

func (h handlers[C, Q, E]) list(ctx echo.Context) error {
	result, err := h.controller.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

func (h handlers[C, Q, E]) search(ctx echo.Context) error {
	result, err := h.controller.Search(ctx.Request().Context(), ctx.QueryParam("filtro"))
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

func (h handlers[C, Q, E]) get(ctx echo.Context) error {
	id, ok := pathID(ctx)
	if !ok {
		return respond(ctx, NotFound[Q](recordNotFound()))
	}

	result, err := h.controller.Get(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

func (h handlers[C, Q, E]) create(ctx echo.Context) error {
	var vm C
	if err := new(echo.DefaultBinder).BindBody(ctx, &vm); err != nil {
		return respond(ctx, BadRequest[Created](invalidBody()))
	}

	result, err := h.controller.Create(ctx.Request().Context(), vm)
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

func (h handlers[C, Q, E]) update(ctx echo.Context) error {
	id, ok := pathID(ctx)
	if !ok {
		return respond(ctx, NotFound[Empty](recordNotFound()))
	}

	var vm C
	if err := new(echo.DefaultBinder).BindBody(ctx, &vm); err != nil {
		return respond(ctx, BadRequest[Empty](invalidBody()))
	}

	result, err := h.controller.Update(ctx.Request().Context(), id, vm)
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

func (h handlers[C, Q, E]) delete(ctx echo.Context) error {
	id, ok := pathID(ctx)
	if !ok {
		return respond(ctx, NotFound[Empty](recordNotFound()))
	}

	result, err := h.controller.Delete(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(ctx, result)
}

// pathID reads the ":id" path parameter. A value that is not a UUID
// addresses no record, like a route constraint would.
func pathID(ctx echo.Context) (kernel.UUID, bool) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, false
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}

func respond[T any](ctx echo.Context, result Result[T]) error {
	if !result.IsOK() {
		return ctx.JSON(result.Status().HTTPStatus(), NewNotificationViews(result.Notifications()))
	}

	if _, empty := any(result.Value()).(Empty); empty {
		return ctx.NoContent(http.StatusOK)
	}
	return ctx.JSON(http.StatusOK, result.Value())
}

func invalidBody() kernel.Notification {
	return kernel.NewNotification("body", "request body is invalid")
}
