package server

// registerRoutes wires the route table. Signup and login are the only
// API routes reachable without a bearer token.
func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", s.handleSignup)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/me", s.requireAuth(), s.handleMe)
	}

	projects := api.Group("/projects", s.requireAuth())
	{
		projects.GET("", s.handleListProjects)
		projects.POST("", s.handleCreateProject)
		projects.GET("/:id", s.handleGetProject)
		projects.PUT("/:id", s.handleUpdateProject)
		projects.DELETE("/:id", s.handleDeleteProject)

		projects.GET("/:id/specs/:fileType", s.handleGetSpec)
		projects.PUT("/:id/specs/:fileType", s.handleWriteSpec)
		projects.GET("/:id/specs/:fileType/versions", s.handleListSpecVersions)
		projects.POST("/:id/specs/:fileType/rollback", s.handleRollbackSpec)

		projects.GET("/:id/tasks", s.handleListTasks)
		projects.POST("/:id/tasks", s.handleCreateTask)
		projects.GET("/:id/tasks/:taskId", s.handleGetTask)

		projects.GET("/:id/chat/history", s.handleChatHistory)
		projects.POST("/:id/chat", s.handleAppendChat)
	}
}
