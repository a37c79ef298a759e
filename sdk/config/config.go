// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

const (
	DefaultPlatformAPIEndpoint = "https://platform-api-service.services.cloud.signiant.com"
	DefaultMessagingServiceURL = "https://messaging-config-service.services.cloud.signiant.com"
)

// Config passed to the SDK (no viper/INI here)
type Config struct {
	Platform PlatformConfig
	S3       S3Config
}

// Endpoints the authenticated session is bound to.
type Endpoints struct {
	PlatformAPIEndpoint string
	MessagingServiceURL string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		PlatformAPIEndpoint: DefaultPlatformAPIEndpoint,
		MessagingServiceURL: DefaultMessagingServiceURL,
	}
}

type PlatformConfig struct {
	Endpoints
	Username string
	Password string
}

type S3Config struct {
	AccessKey   string
	SecretKey   string
	AccessToken string
	Region      string
	EndpointURL string
}
