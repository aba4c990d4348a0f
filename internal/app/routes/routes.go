package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecakir/campushub/internal/app/controllers"
	"github.com/ecakir/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	resourceController *controllers.ResourceController,
	forumController *controllers.ForumController,
	studyGroupController *controllers.StudyGroupController,
	messagingController *controllers.MessagingController,
	calendarController *controllers.CalendarController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public reads ---
	api.GET("/courses", courseController.GetCourses)
	api.GET("/courses/:id", courseController.GetCourse)
	api.GET("/courses/:id/members", courseController.GetCourseMembers)
	api.GET("/resources", resourceController.GetResources)
	api.GET("/resources/:id/download", resourceController.DownloadResource)
	api.GET("/forum/categories", forumController.GetCategories)
	api.GET("/forum/posts", forumController.GetPosts)
	api.GET("/forum/posts/:id", authMiddleware.OptionalSession(), forumController.GetPost)
	api.GET("/study-groups", studyGroupController.GetGroups)

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.SessionAuth())
	{
		authenticated.GET("/auth/me", authController.Me)

		users := authenticated.Group("/users")
		{
			users.PUT("/profile", userController.UpdateProfile)
			users.POST("/profile-picture", userController.UploadProfilePicture)
			users.GET("/search", userController.Search)
			users.GET("/:id", userController.GetUser)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("/my", courseController.GetMyCourses)
			courses.POST("", courseController.CreateCourse)
			courses.POST("/:id/join", courseController.JoinCourse)
			courses.DELETE("/:id/leave", courseController.LeaveCourse)
		}

		authenticated.POST("/resources", resourceController.UploadResource)

		forum := authenticated.Group("/forum")
		{
			forum.POST("/posts", forumController.CreatePost)
			forum.POST("/posts/:id/replies", forumController.CreateReply)
			forum.POST("/posts/:id/vote", forumController.VotePost)
			forum.POST("/replies/:id/vote", forumController.VoteReply)
		}

		groups := authenticated.Group("/study-groups")
		{
			groups.GET("/my", studyGroupController.GetMyGroups)
			groups.GET("/:id", studyGroupController.GetGroup)
			groups.POST("", studyGroupController.CreateGroup)
			groups.PATCH("/:id", studyGroupController.UpdateGroup)
			groups.GET("/:id/members", studyGroupController.GetGroupMembers)
			groups.POST("/:id/join", studyGroupController.JoinGroup)
			groups.DELETE("/:id/leave", studyGroupController.LeaveGroup)
			groups.POST("/:id/sessions", studyGroupController.ScheduleSession)
		}

		conversations := authenticated.Group("/conversations")
		{
			conversations.GET("", messagingController.GetConversations)
			conversations.POST("", messagingController.CreateConversation)
			conversations.PATCH("/:id", messagingController.UpdateConversation)
			conversations.GET("/:id/messages", messagingController.GetMessages)
			conversations.GET("/:id/members", messagingController.GetConversationMembers)
			conversations.POST("/:id/members", messagingController.AddConversationMember)
			conversations.DELETE("/:id/members/:userId", messagingController.RemoveConversationMember)
		}

		authenticated.POST("/messages", messagingController.SendMessage)
		authenticated.POST("/messages/file", messagingController.SendFileMessage)

		calendar := authenticated.Group("/calendar/events")
		{
			calendar.GET("", calendarController.GetEvents)
			calendar.POST("", calendarController.CreateEvent)
			calendar.GET("/:id", calendarController.GetEvent)
			calendar.PUT("/:id", calendarController.UpdateEvent)
			calendar.PATCH("/:id/complete", calendarController.CompleteEvent)
			calendar.DELETE("/:id", calendarController.DeleteEvent)
		}

		authenticated.GET("/dashboard", dashboardController.GetDashboard)
	}
}
