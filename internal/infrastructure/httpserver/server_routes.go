package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/", s.welcome)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	products := s.echo.Group("/productsapi/products")
	products.GET("", s.listProducts)
	products.GET("/", s.listProducts)
	products.POST("", s.createProduct)
	products.POST("/", s.createProduct)
	products.GET("/:product_id", s.getProduct)
}
