package approuters

import (
	"Userdir/internal/configuration"

	"github.com/gin-gonic/gin"
)

func UserRouters(router *gin.Engine, container *configuration.Container) {
	userRoute := router.Group("/api/users")
	{
		userRoute.GET("", container.UserHandler.GetAllUsers)
		userRoute.POST("", container.UserHandler.CreateUser)
		userRoute.GET("/:username", container.UserHandler.GetUser)
		userRoute.PUT("/:username", container.UserHandler.UpdateUser)
	}
}
