package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core/user"
	inmemdb "github.com/jogaaurora/aurora/storage/inmem"
)

const (
	SessionCookie   = "SESSION"
	contextClaimKey = "claims"
)

// Claims represents the session claims carried by the signed session cookie.
type Claims struct {
	jwt.StandardClaims
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

type sessionIssuer struct {
	issuer string
	key    []byte
	ttl    time.Duration
	now    func() time.Time
}

func newSessionIssuer(issuer string, key []byte, ttl time.Duration) *sessionIssuer {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &sessionIssuer{issuer: issuer, key: key, ttl: ttl, now: time.Now}
}

func (si *sessionIssuer) claimsOf(usr user.User) *Claims {
	now := si.now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    si.issuer,
			Subject:   usr.ID,
			ExpiresAt: now.Add(si.ttl).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: usr.Username,
		Roles:    usr.Roles,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func (si *sessionIssuer) GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(si.key)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (si *sessionIssuer) parse(raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return si.key, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (si *sessionIssuer) cookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// middleware rejects requests without a valid session cookie.
func (si *sessionIssuer) middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			c, err := ctx.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				return errUnauthorized
			}
			claims, err := si.parse(c.Value)
			if err != nil {
				return errUnauthorized
			}
			ctx.Set(contextClaimKey, *claims)
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimKey).(Claims); ok {
		return claims, nil
	}
	return Claims{}, errUnauthorized
}

type authApi struct {
	sessions *sessionIssuer
	db       *inmemdb.DB
}

func registerAuthAPI(e *echo.Echo, auth echo.MiddlewareFunc, sessions *sessionIssuer, db *inmemdb.DB) {
	api := authApi{sessions: sessions, db: db}

	e.POST("/login", api.login)
	e.POST("/logout", api.logout)
	e.GET("/client/me", api.me, auth)
}

// login exchanges Basic credentials for a session cookie.
func (api *authApi) login(ctx echo.Context) error {
	username, password, ok := ctx.Request().BasicAuth()
	if !ok {
		return errAuthenticationFailed
	}
	usr, err := api.db.GetUserByUsername(username)
	if err != nil {
		if errors.Cause(err) == inmemdb.ErrUserNotFound {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(password); err != nil {
		return errAuthenticationFailed
	}

	claims := api.sessions.claimsOf(usr)
	token, err := api.sessions.GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	ctx.SetCookie(api.sessions.cookie(token, time.Unix(claims.ExpiresAt, 0)))
	return ctx.JSON(http.StatusOK, usr)
}

func (api *authApi) logout(ctx echo.Context) error {
	c := api.sessions.cookie("", time.Unix(0, 0))
	c.MaxAge = -1
	ctx.SetCookie(c)
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	usr, err := api.db.GetUser(claims.Subject)
	if err != nil {
		if errors.Cause(err) == inmemdb.ErrUserNotFound {
			return errUnauthorized
		}
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func registerSystemAPI(e *echo.Echo) {
	e.GET("/actuator/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"status": "UP"})
	})
}
