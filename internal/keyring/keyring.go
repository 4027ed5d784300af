// Package keyring keeps the PostgreSQL connection string in the OS keyring so
// it never has to live in config.yaml or shell history.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/daychain/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// probeUser is never written; reading it only tells whether the keyring answers.
const probeUser = "availability-probe"

// translate maps go-keyring errors onto this package's sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s: %v", ErrKeyringUnavailable, op, err)
	}
}

func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate("read", err)
	}
	return connStr, nil
}

// SetConnectionString replaces the stored connection string. Surrounding
// whitespace from a pasted value is dropped.
func SetConnectionString(connStr string) error {
	connStr = strings.TrimSpace(connStr)
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return translate("store", keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr))
}

func DeleteConnectionString() error {
	return translate("delete", keyring.Delete(constants.AppName, constants.DefaultKeyringUser))
}

func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
