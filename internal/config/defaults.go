package config

// CurrentVersion is the settings schema version this binary writes.
const CurrentVersion = 2

// ConfigFileName is the settings file name inside the Specify home.
const ConfigFileName = "config.yml"
