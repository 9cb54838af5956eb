package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode maps APP_ENV onto a gin mode and returns the mode applied.
// Unknown environments run in debug mode.
func SetGinMode(env string) string {
	mode := gin.DebugMode
	switch env {
	case "production", "staging":
		mode = gin.ReleaseMode
	case "test":
		mode = gin.TestMode
	}
	gin.SetMode(mode)
	return mode
}
