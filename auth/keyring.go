package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const service = "eggdl"

// SavePassword stores the password of account in the system keyring.
func SavePassword(account, password string) error {
	return keyring.Set(service, account, password)
}

// LoadPassword returns the stored password of account. A missing entry is
// reported as ok == false, not as an error.
func LoadPassword(account string) (password string, ok bool, err error) {
	password, err = keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return password, true, nil
}

// DeletePassword removes the stored password of account.
func DeletePassword(account string) error {
	err := keyring.Delete(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
