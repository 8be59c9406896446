package initializers

import (
	"fleet-tools-backend/config"
	smtpclient "fleet-tools-backend/lib/smtp"
)

func InitSmtp() {
	err := smtpclient.Connect(config.Conf.Smtp.User, config.Conf.Smtp.Password,
		config.Conf.Smtp.Host, config.Conf.Smtp.Port, *config.Conf.Smtp.TLSEnabled)
	if err != nil {
		panic(err.Error())
	}
}
