/*
Package config loads the service configuration from the environment, an
optional .env file and an optional YAML file.

	cfg, err := config.Load(os.Getenv("SMARTCARE_CONFIG"))

Environment variables always win over the YAML file. The environment
(development, production or testing) selects defaults for the listen host,
debug mode and log format.
*/
package config
