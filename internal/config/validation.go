package config

import (
	"net/mail"
	"net/url"
	"time"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	return v.validate()
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	if err := cv.validateCMS(); err != nil {
		return err
	}
	return cv.validateContact()
}

func (cv *configurationValidator) validateSite() error {
	if err := validateAbsoluteURL("site.base_url", cv.config.Site.BaseURL); err != nil {
		return err
	}
	if e := cv.config.Site.Email; e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			return errors.WrapError(err, errors.CategoryConfig, "site.email is not a valid address").
				WithContext("value", e).
				Fatal().
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	if s.Port < 1 || s.Port > 65535 {
		return errors.ConfigError("server.port out of range").WithContext("value", s.Port).Build()
	}
	if s.AdminPort < 1 || s.AdminPort > 65535 {
		return errors.ConfigError("server.admin_port out of range").WithContext("value", s.AdminPort).Build()
	}
	if s.Port == s.AdminPort {
		return errors.ConfigError("server.port and server.admin_port must differ").
			WithContext("port", s.Port).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateCMS() error {
	c := cv.config.CMS
	if _, err := cmsKindNormalizer.NormalizeWithError(string(c.Kind)); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid cms.kind").Fatal().Build()
	}
	if c.Kind == CMSKindWordPress {
		if c.BaseURL == "" {
			return errors.ConfigError("cms.base_url is required for the wordpress source").Build()
		}
		if err := validateAbsoluteURL("cms.base_url", c.BaseURL); err != nil {
			return err
		}
		if (c.Username == "") != (c.AppPassword == "") {
			return errors.ConfigError("cms.username and cms.app_password must be set together").Build()
		}
	}
	if c.Retry.Max < c.Retry.Initial {
		return errors.ConfigError("cms.retry.max must not be smaller than cms.retry.initial").
			WithContext("initial", c.Retry.Initial.String()).
			WithContext("max", c.Retry.Max.String()).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateContact() error {
	c := cv.config.Contact
	kind, err := notifierNormalizer.NormalizeWithError(string(c.Notifier))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid contact.notifier").Fatal().Build()
	}
	cv.config.Contact.Notifier = kind
	if kind == NotifierNATS && c.NATS.URL == "" {
		return errors.ConfigError("contact.nats.url is required for the nats notifier").Build()
	}
	if c.NATS.Timeout > time.Minute {
		return errors.ConfigError("contact.nats.timeout must not exceed 1m").Build()
	}
	return nil
}

func validateAbsoluteURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.ConfigError(field+" must be an absolute http(s) URL").
			WithContext("value", raw).
			Build()
	}
	return nil
}
