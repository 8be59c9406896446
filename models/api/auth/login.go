package authapimodels

import "fleet-tools-backend/models/apperrors"

type LoginData struct {
	Email string `json:"email"`
}

func (d LoginData) Validate() error {
	if d.Email == "" {
		return apperrors.OnField(apperrors.KindInvalidRequest, "email", "email is required")
	}
	return nil
}

type TokenView struct {
	AccessToken string `json:"access_token"`
}
