package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"tasks/internal/domain/models"
	"tasks/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type TaskAPI struct {
	httpSrv *http.Server
	users   *service.UserService
	lists   *service.ListService
	tasks   *service.TaskService
}

func NewTaskAPI(cfg *Config, users *service.UserService, lists *service.ListService, tasks *service.TaskService) *TaskAPI {
	if users == nil || lists == nil || tasks == nil {
		return nil
	}

	httpSrv := http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port),
	}

	api := TaskAPI{
		httpSrv: &httpSrv,
		users:   users,
		lists:   lists,
		tasks:   tasks,
	}

	api.configRoutes()

	return &api
}

func (api *TaskAPI) Start() error {
	return api.httpSrv.ListenAndServe()
}

func (api *TaskAPI) Shutdown(ctx context.Context) error {
	return api.httpSrv.Shutdown(ctx)
}

// Handler exposes the configured router, mainly for httptest.
func (api *TaskAPI) Handler() http.Handler {
	return api.httpSrv.Handler
}

func (api *TaskAPI) configRoutes() {
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(GzipResponseCompress())
	router.Use(Auth(api.users))

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"status":   "fail",
			"messages": []string{"Route not found"},
		})
	})

	users := router.Group("/users")
	{
		users.POST("", api.createUser)
		users.GET("/:id", api.getUser)
		users.DELETE("/:id", api.deleteUser)
	}

	lists := router.Group("/lists", AuthRequired())
	{
		lists.POST("", api.createList)
		lists.GET("", api.getLists)
		lists.PUT("/:listUuid", api.updateList)
		lists.DELETE("/:listUuid", api.deleteList)

		tasks := lists.Group("/:listUuid/tasks")
		{
			tasks.POST("", api.createTask)
			tasks.GET("", api.getTasks)
			tasks.PUT("/:taskUuid", api.updateTask)
			tasks.DELETE("/:taskUuid", api.deleteTask)
		}
	}

	api.httpSrv.Handler = router
}

// respond serializes an operation outcome into the uniform envelope.
// Infrastructure errors are logged and masked; validation failures carry
// their collected messages; success always has a data key, null for
// deletes.
func respond(ctx *gin.Context, res models.Result, err error) {
	if err != nil {
		log.Println("[ERROR] Operation failed:", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Internal server error",
		})
		return
	}
	if res.Failed() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"status":   "fail",
			"messages": res.Fails,
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   res.Data,
	})
}

func (api *TaskAPI) createUser(ctx *gin.Context) {
	res, err := api.users.Register(ctx.Request.Context())
	respond(ctx, res, err)
}

func (api *TaskAPI) getUser(ctx *gin.Context) {
	res, err := api.users.Find(ctx.Request.Context(), ctx.Param("id"))
	respond(ctx, res, err)
}

func (api *TaskAPI) deleteUser(ctx *gin.Context) {
	res, err := api.users.Remove(ctx.Request.Context(), ctx.Param("id"))
	respond(ctx, res, err)
}

func (api *TaskAPI) createList(ctx *gin.Context) {
	var req models.CreateListRequest
	// A bind error means an empty or malformed body; validation then
	// reports the missing fields, matching the contract messages.
	_ = ctx.ShouldBindJSON(&req)

	res, err := api.lists.Create(ctx.Request.Context(), ctx.GetString(ctxUserID), req)
	respond(ctx, res, err)
}

func (api *TaskAPI) getLists(ctx *gin.Context) {
	res, err := api.lists.All(ctx.Request.Context(), ctx.GetString(ctxUserID))
	respond(ctx, res, err)
}

func (api *TaskAPI) updateList(ctx *gin.Context) {
	var req models.UpdateListRequest
	_ = ctx.ShouldBindJSON(&req)

	res, err := api.lists.Update(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("listUuid"), req)
	respond(ctx, res, err)
}

func (api *TaskAPI) deleteList(ctx *gin.Context) {
	res, err := api.lists.Remove(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("listUuid"))
	respond(ctx, res, err)
}

func (api *TaskAPI) createTask(ctx *gin.Context) {
	var req models.CreateTaskRequest
	_ = ctx.ShouldBindJSON(&req)

	res, err := api.tasks.Create(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("listUuid"), req)
	respond(ctx, res, err)
}

func (api *TaskAPI) getTasks(ctx *gin.Context) {
	res, err := api.tasks.All(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("listUuid"))
	respond(ctx, res, err)
}

func (api *TaskAPI) updateTask(ctx *gin.Context) {
	var req models.UpdateTaskRequest
	_ = ctx.ShouldBindJSON(&req)

	res, err := api.tasks.Update(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("taskUuid"), req)
	respond(ctx, res, err)
}

func (api *TaskAPI) deleteTask(ctx *gin.Context) {
	res, err := api.tasks.Remove(ctx.Request.Context(), ctx.GetString(ctxUserID), ctx.Param("taskUuid"))
	respond(ctx, res, err)
}
