package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	auth := s.echo.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.GET("/validate", s.validateToken)
	auth.GET("/info", s.getUsername)
	auth.POST("/logout", s.logout)
	auth.POST("/verify", s.verifyEmail)
	auth.POST("/resend-verification", s.resendVerification)
}
