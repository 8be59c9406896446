package authhandler

import (
	log "github.com/sirupsen/logrus"

	"fleet-tools-backend/db"
	hierarchystore "fleet-tools-backend/lib/hierarchy/store"
	authutils "fleet-tools-backend/lib/utils/auth-utils"
	authapimodels "fleet-tools-backend/models/api/auth"
	"fleet-tools-backend/models/apperrors"
)

type Provider interface {
	Login(data authapimodels.LoginData) (response authapimodels.TokenView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		hierarchyStore: hierarchystore.NewInstance(db.DB),
	}
}

type impl struct {
	hierarchyStore hierarchystore.Provider
}

// Login identifies a directorate user by email. The deployment sits on
// an isolated network behind an external identity gate, so the email
// is trusted as already authenticated.
func (i impl) Login(data authapimodels.LoginData) (response authapimodels.TokenView, err error) {
	logger := log.WithField("email", data.Email)
	if err := data.Validate(); err != nil {
		return authapimodels.TokenView{}, err
	}
	user, err := i.hierarchyStore.FindUserByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("user lookup failed")
		return authapimodels.TokenView{}, err
	}
	if user == nil {
		logger.Debug("no user with this email")
		return authapimodels.TokenView{}, apperrors.New(apperrors.KindNotFound, "no user with this email")
	}
	tokenString, err := authutils.GetToken(user.ID, user.Name, user.DirectorateID, user.Role)
	if err != nil {
		logger.WithError(err).Error("token generation failed")
		return authapimodels.TokenView{}, err
	}
	return authapimodels.TokenView{
		AccessToken: tokenString,
	}, nil
}
