// Package auth stores the access token of the authenticated resolution
// tier in the system keyring.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/samber/mo"
	"github.com/vhls-cli/vhls/constant"
	"github.com/zalando/go-keyring"
)

const (
	service = constant.App
	user    = "vimeo-token"
)

// EnvToken overrides the keyring when set.
const EnvToken = "VHLS_VIMEO_TOKEN"

// SetToken persists the access token.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	return keyring.Set(service, user, token)
}

// GetToken retrieves the stored access token.
func GetToken() (string, error) {
	return keyring.Get(service, user)
}

// DeleteToken removes the stored access token. A missing token is not an error.
func DeleteToken() error {
	if err := keyring.Delete(service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Token returns the credential to use when none was given explicitly:
// the environment override first, then the keyring.
func Token() mo.Option[string] {
	if t := strings.TrimSpace(os.Getenv(EnvToken)); t != "" {
		return mo.Some(t)
	}
	t, err := GetToken()
	if err != nil || t == "" {
		return mo.None[string]()
	}
	return mo.Some(t)
}
