// Package auth contiene los controllers de sesión.
package auth

import (
	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
)

// Controllers agrupa todos los controllers de sesión.
type Controllers struct {
	Register *RegisterController
	Login    *LoginController
	Logout   *LogoutController
	Me       *MeController
}

// NewControllers crea el agregador de controllers auth.
func NewControllers(s svc.Service, cookie dto.CookieConfig) *Controllers {
	return &Controllers{
		Register: NewRegisterController(s, cookie),
		Login:    NewLoginController(s, cookie),
		Logout:   NewLogoutController(s, cookie),
		Me:       NewMeController(s),
	}
}
