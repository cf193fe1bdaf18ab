package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
	"github.com/jogaaurora/aurora/core/assessment"
	"github.com/jogaaurora/aurora/core/classroom"
	"github.com/jogaaurora/aurora/core/student"
	"github.com/jogaaurora/aurora/core/user"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "Usuário ou senha inválidos")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "Recurso não encontrado")
)

// notFoundMessages maps the storage sentinels to the 404 message sent to clients.
var notFoundMessages = map[error]string{
	classroom.ErrNotFound:   "Turma não encontrada",
	student.ErrNotFound:     "Estudante não encontrado",
	assessment.ErrNotFound:  "Avaliação não encontrada",
	inmemdb.ErrUserNotFound: "Usuário não encontrado",
}

var conflictMessages = map[error]string{
	inmemdb.ErrUsernameTaken:   "Nome de usuário já utilizado",
	inmemdb.ErrAttendanceTaken: "A chamada desta data já foi realizada",
	inmemdb.ErrNoAttendance:    "A chamada desta data ainda não foi realizada",
}

var badRequestMessages = map[error]string{
	inmemdb.ErrClassroomMissing: "Turma inexistente",
	inmemdb.ErrNotEnrolled:      "Estudante não pertence à turma",
	inmemdb.ErrInvalidStatus:    "Status de presença inválido",
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Every error body is {"message": "..."}; validation errors add {"errors": {field: message}}.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		body := echo.Map{}

		cause := errors.Cause(err)
		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			body["message"] = origErr.Message
		case *core.ValidationError:
			code = http.StatusBadRequest
			body["message"] = origErr.Error()
			if len(origErr.Fields) > 0 {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				body["errors"] = fldErrs
			}
		case *core.PolicyError:
			code = http.StatusConflict
			body["message"] = origErr.Message
		default:
			if msg, ok := notFoundMessages[cause]; ok {
				code = http.StatusNotFound
				body["message"] = msg
				break
			}
			if msg, ok := conflictMessages[cause]; ok {
				code = http.StatusConflict
				body["message"] = msg
				break
			}
			if msg, ok := badRequestMessages[cause]; ok {
				code = http.StatusBadRequest
				body["message"] = msg
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			body["message"] = msg

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
			}
			if logger != nil {
				logger.Error(msg, errors.Wrap(err, msg), usr)
			}

			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code >= http.StatusInternalServerError {
			body["message"] = err.Error()
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, body)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
