package service

import (
	"argynix-connect/internal/config"
	"argynix-connect/internal/domain"
	"argynix-connect/internal/thingsboard"

	"go.uber.org/zap"
)

// ClientFactory builds a ThingsBoard client for an instance URL and token.
type ClientFactory func(instanceURL, token string) *thingsboard.Client

func NewClientFactory(cfg config.ThingsBoardConfig, logger *zap.Logger) ClientFactory {
	return func(instanceURL, token string) *thingsboard.Client {
		if instanceURL == "" {
			instanceURL = cfg.URL
		}
		return thingsboard.New(instanceURL, token, logger,
			thingsboard.WithTimeout(cfg.Timeout),
			thingsboard.WithScheduledRPCPath(cfg.ScheduledRPCPath),
		)
	}
}

func (f ClientFactory) ForSession(s *domain.Session) *thingsboard.Client {
	return f(s.InstanceURL, s.Token)
}
