// filepath: cmd/inkhub/main.go
package main

import (
	"inkhub/internal/cli"

	// Import docs for Swagger
	_ "inkhub/docs"
)

// @title inkhub API
// @version 0.4.0
// @description REST API for the studio website: media uploads, news and visit statistics.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /api/login.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
