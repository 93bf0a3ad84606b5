package session

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/locomotion/oerror"
)

// recoverPanic recovers a panic of the calling operation, reports it to sentry tagged with the session and
// stores it in err.
func (s *Session) recoverPanic(op string, err *error) {
	v := recover()
	if v == nil {
		return
	}
	s.log.Error("session panic", "op", op, "tick", s.ticks, "error", v)
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("session", s.name)
		scope.SetTag("op", op)
		scope.SetTag("tick", fmt.Sprint(s.ticks))
	})

	perr := oerror.New("%s() panic: %v", op, v)
	hub.Recover(perr)
	hub.Flush(time.Second * 5)
	*err = perr
}
