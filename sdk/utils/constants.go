// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

const (
	IniName             = ".mediashuttle.ini"
	IniPathEnv          = "MEDIASHUTTLE_INI"
	CurrentEnvironment  = "current_environment"
	UpdatedEnvKey       = "updated_environment"
	MsUser              = "mediashuttle_user"
	MsPassword          = "mediashuttle_password"
	PlatformAPIEndpoint = "platform_api_endpoint"
	MessagingServiceURL = "messaging_service_url"
	DefaultAccount      = "default_account"
	DefaultPortal       = "default_portal"
	DefaultDestination  = "default_destination"
)
