package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/inkboard/internal/http/errors"
	"github.com/dropDatabas3/inkboard/internal/jwt"
)

// AuthCookieName es la cookie de sesión que setean login/register.
const AuthCookieName = "auth-token"

// AuthConfig configura la validación de tokens.
type AuthConfig struct {
	Secret   []byte
	Issuer   string
	Required bool // con false, un request sin token pasa sin claims
}

// tokenFromRequest extrae el token de la cookie de sesión o del header
// Authorization: Bearer.
func tokenFromRequest(r *http.Request) string {
	if ck, err := r.Cookie(AuthCookieName); err == nil && ck != nil {
		if v := strings.TrimSpace(ck.Value); v != "" {
			return v
		}
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// WithAuth valida el JWT del request e inyecta claims y user ID en el
// contexto. Con Required=false los requests anónimos siguen de largo: el
// engine trata authorId como etiqueta sin verificar.
func WithAuth(cfg AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				if cfg.Required {
					errors.WriteError(w, errors.ErrUnauthorized)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwt.ParseHS256(token, cfg.Secret, cfg.Issuer)
			if err != nil {
				if cfg.Required {
					errors.WriteError(w, errors.ErrUnauthorized.WithCause(err))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			if uid := ClaimString(claims, "userId"); uid != "" {
				ctx = WithUserID(ctx, uid)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
