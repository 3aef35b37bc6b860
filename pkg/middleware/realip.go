package middleware

import (
	"github.com/go-chi/chi/v5/middleware"
)

// RealIP just wraps the equal-named method of the chi framework.
var RealIP = middleware.RealIP
