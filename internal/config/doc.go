// Package config manages user-level settings stored at
// ~/.datalab/config.yaml, with DATALAB_* environment overrides. Settings
// cover the default backup target directory and non-interactive removal.
package config
