package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/booking-api/internal/service"
)

const (
	// SessionHeader carries the booking session id in both directions.
	SessionHeader = "X-Booking-Session"
	// ContextSessionKey is the gin context key storing the booking session.
	ContextSessionKey = "bookingSession"
)

type sessionAcquirer interface {
	Acquire(id string) (*service.Session, bool)
}

// Session resolves the booking session of the request, creating one when the header is
// missing or unknown, and echoes its id back in the response header.
func Session(store sessionAcquirer) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := store.Acquire(c.GetHeader(SessionHeader))
		c.Set(ContextSessionKey, session)
		c.Writer.Header().Set(SessionHeader, session.ID)
		SetMeta(c, "session_id", session.ID)
		c.Next()
	}
}

// MustSession returns the booking session attached by Session. It panics when the
// route was registered without the middleware.
func MustSession(c *gin.Context) *service.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		panic("middleware: booking session requested on a route without the Session middleware")
	}
	return value.(*service.Session)
}
