// Package bconfig provides YAML holders for interfaces of configuration, selected by ".type"
package bconfig

// BaseConfig contains basic properties required for all Config types
type BaseConfig interface {
	// GetType returns the type name
	GetType() string

	// VerifyConfig checks the configuration after unmarshalling
	VerifyConfig() error
}
